package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Created Kind = "created"
	Updated Kind = "updated"
	Deleted Kind = "deleted"
)

type Event struct {
	ID         string         `json:"event_id"`
	Type       string         `json:"type"`
	Resource   string         `json:"resource"`
	Kind       Kind           `json:"kind"`
	RecordID   uint           `json:"record_id"`
	Record     map[string]any `json:"record,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// New builds an event named "<resource>_<kind>", e.g. "shop_item_updated".
func New(resource string, kind Kind, id uint, record map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       fmt.Sprintf("%s_%s", resource, kind),
		Resource:   resource,
		Kind:       kind,
		RecordID:   id,
		Record:     record,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier receives record changes after they are committed.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Recorder keeps events in memory. Tests use it in place of a broker.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// All returns a copy of the events received so far, oldest first.
func (r *Recorder) All() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
