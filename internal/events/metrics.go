package events

import (
	"github.com/prometheus/client_golang/prometheus"
)

var published = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "How many ledger change events were published, partitioned by resource kind.",
	},
	[]string{"kind"},
)

var publishFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "events_publish_failures_total",
		Help: "How many ledger change events could not be published, partitioned by resource kind.",
	},
	[]string{"kind"},
)

// Collectors returns the Prometheus metrics of this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{published, publishFailures}
}
