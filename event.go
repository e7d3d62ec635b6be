package coinflip

import "github.com/google/uuid"

type EventKind string

const (
	EventCreated            EventKind = "created"
	EventFlipped            EventKind = "flipped"
	EventGuessedCorrectly   EventKind = "guessed_correctly"
	EventGuessedIncorrectly EventKind = "guessed_incorrectly"
	EventRemoved            EventKind = "removed"
)

// Event is a notification raised by a lifecycle transition.
// Side is the drawn side for Created, Flipped and the guess events,
// and the last stored side for Removed.
type Event struct {
	ID      string    `json:"id"`
	Kind    EventKind `json:"kind"`
	Account AccountID `json:"account"`
	Side    Side      `json:"side"`
	Height  uint64    `json:"height"`
}

func NewEvent(kind EventKind, account AccountID, side Side, height uint64) Event {
	return Event{
		ID:      uuid.New().String(),
		Kind:    kind,
		Account: account,
		Side:    side,
		Height:  height,
	}
}

// EventSink accepts events fire-and-forget.
type EventSink interface {
	Deposit(ev Event)
}

type EventReceiver interface {
	Receive() <-chan Event
}
