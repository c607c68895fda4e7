package advisor

import "github.com/prometheus/client_golang/prometheus"

var fallbacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "advisor_fallbacks_total",
		Help: "How many narrative service calls failed and were answered locally, partitioned by endpoint.",
	},
	[]string{"endpoint"},
)

// Collectors returns the Prometheus collectors of the advisor.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{fallbacks}
}
