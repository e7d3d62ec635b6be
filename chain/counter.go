// Package chain provides coinflip.Sequence implementations standing in for
// a block height.
package chain

import "sync/atomic"

// Counter is a height advanced by hand.
type Counter struct {
	height uint64
}

func NewCounter(start uint64) *Counter {
	return &Counter{height: start}
}

func (c *Counter) Height() uint64 {
	return atomic.LoadUint64(&c.height)
}

// Advance moves the height forward by one and returns the new height
func (c *Counter) Advance() uint64 {
	return atomic.AddUint64(&c.height, 1)
}
