// Package events publishes ledger change notifications for external
// synchronization.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Kind is the type of resource a change refers to.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindDebt        Kind = "debt"
)

// Change lists the IDs of resources added to or removed from a profile.
type Change struct {
	ProfileID uuid.UUID   `json:"profileId"`
	Kind      Kind        `json:"kind"`
	Added     []uuid.UUID `json:"added"`
	Removed   []uuid.UUID `json:"removed"`
	Timestamp time.Time   `json:"timestamp"`
}

// Added returns a change for newly created resources.
func Added(profileID uuid.UUID, kind Kind, ids ...uuid.UUID) Change {
	return Change{ProfileID: profileID, Kind: kind, Added: ids, Removed: []uuid.UUID{}, Timestamp: time.Now().UTC()}
}

// Removed returns a change for deleted resources.
func Removed(profileID uuid.UUID, kind Kind, ids ...uuid.UUID) Change {
	return Change{ProfileID: profileID, Kind: kind, Added: []uuid.UUID{}, Removed: ids, Timestamp: time.Now().UTC()}
}

// Updated returns a change for resources that were modified in place. They
// are listed as both removed and added.
func Updated(profileID uuid.UUID, kind Kind, ids ...uuid.UUID) Change {
	return Change{ProfileID: profileID, Kind: kind, Added: ids, Removed: ids, Timestamp: time.Now().UTC()}
}

// ToJSON encodes the change.
func (c Change) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// ChangeFromJSON decodes a change.
func ChangeFromJSON(data []byte) (Change, error) {
	var c Change
	err := json.Unmarshal(data, &c)
	return c, err
}

// Publisher sends changes to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}

// Nop discards all changes. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Change) error { return nil }

func (Nop) Close() error { return nil }

var publisher Publisher = Nop{}

// SetPublisher replaces the publisher used by Publish.
func SetPublisher(p Publisher) {
	if p == nil {
		p = Nop{}
	}
	publisher = p
}

// Publish sends the change with the configured publisher. Failures are
// logged and counted, never returned.
func Publish(ctx context.Context, change Change) {
	if len(change.Added) == 0 && len(change.Removed) == 0 {
		return
	}

	err := publisher.Publish(ctx, change)
	if err != nil {
		publishFailures.WithLabelValues(string(change.Kind)).Inc()
		log.Error().Str("component", "events").Err(err).Str("profile", change.ProfileID.String()).Str("kind", string(change.Kind)).Msg("could not publish change")
		return
	}

	published.WithLabelValues(string(change.Kind)).Inc()
}
