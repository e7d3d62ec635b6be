package mock

import (
	"sync"

	"github.com/DE-labtory/coinflip"
)

// Entropy returns a 32 byte entropy value that reduces to side.
func Entropy(side coinflip.Side) []byte {
	e := make([]byte, 32)
	if side == coinflip.Tail {
		e[0] = 1
	}
	return e
}

type Randomness struct {
	RandomFunc func(subject []byte) []byte
}

func (r *Randomness) Random(subject []byte) []byte {
	return r.RandomFunc(subject)
}

// SideQueue forces draws: each call returns the next queued side, and the
// last one repeats once the queue is drained. Subjects are recorded.
type SideQueue struct {
	lock     sync.Mutex
	sides    []coinflip.Side
	Subjects [][]byte
}

func NewSideQueue(sides ...coinflip.Side) *SideQueue {
	return &SideQueue{sides: sides}
}

func (q *SideQueue) Push(sides ...coinflip.Side) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.sides = append(q.sides, sides...)
}

func (q *SideQueue) Random(subject []byte) []byte {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.Subjects = append(q.Subjects, subject)
	if len(q.sides) == 0 {
		return Entropy(coinflip.Head)
	}
	side := q.sides[0]
	if len(q.sides) > 1 {
		q.sides = q.sides[1:]
	}
	return Entropy(side)
}
