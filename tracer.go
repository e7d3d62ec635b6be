package coinflip

import (
	"fmt"
	"sync"

	"github.com/DE-labtory/iLogger"
)

type Tracer interface {
	EventSink
	Trace()
}

// EventTracer keeps the most recent deposited events in memory and writes
// them out on Trace. A limit of zero keeps everything.
type EventTracer struct {
	lock   sync.RWMutex
	limit  int
	events []Event
}

func NewEventTracer(limit int) *EventTracer {
	return &EventTracer{
		lock:   sync.RWMutex{},
		limit:  limit,
		events: make([]Event, 0),
	}
}

func (t *EventTracer) Deposit(ev Event) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.events = append(t.events, ev)
	if t.limit > 0 && len(t.events) > t.limit {
		t.events = t.events[len(t.events)-t.limit:]
	}
}

func (t *EventTracer) Events() []Event {
	t.lock.RLock()
	defer t.lock.RUnlock()

	events := make([]Event, len(t.events))
	copy(events, t.events)
	return events
}

// Count returns how many events of the given kind were deposited for account
func (t *EventTracer) Count(kind EventKind, account AccountID) int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	n := 0
	for _, ev := range t.events {
		if ev.Kind == kind && ev.Account == account {
			n++
		}
	}
	return n
}

func (t *EventTracer) Trace() {
	t.lock.RLock()
	defer t.lock.RUnlock()

	for _, ev := range t.events {
		iLogger.Info(nil, formatEvent(ev))
	}
}

func formatEvent(ev Event) string {
	return fmt.Sprintf("id=%s kind=%s account=%s side=%s height=%d", ev.ID, ev.Kind, ev.Account, ev.Side, ev.Height)
}
