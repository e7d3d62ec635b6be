package coinflip

import (
	"sync/atomic"

	"github.com/DE-labtory/iLogger"
)

// EventChannel is a buffered EventSink. Deposit never blocks: when the
// buffer is full the event is dropped and counted.
type EventChannel struct {
	buffer  chan Event
	dropped uint64
}

func NewEventChannel(size int) *EventChannel {
	if size < 0 {
		size = 0
	}
	return &EventChannel{
		buffer: make(chan Event, size),
	}
}

func (c *EventChannel) Deposit(ev Event) {
	select {
	case c.buffer <- ev:
	default:
		atomic.AddUint64(&c.dropped, 1)
		iLogger.Infof(nil, "[EventChannel] buffer full, dropped event kind=%s account=%s", ev.Kind, ev.Account)
	}
}

func (c *EventChannel) Receive() <-chan Event {
	return c.buffer
}

func (c *EventChannel) Dropped() uint64 {
	return atomic.LoadUint64(&c.dropped)
}
