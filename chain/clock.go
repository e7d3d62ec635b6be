package chain

import (
	"sync/atomic"
	"time"

	"github.com/DE-labtory/iLogger"
)

const DefaultBlockInterval = 6 * time.Second

// BlockClock produces a new block height every interval.
type BlockClock struct {
	counter  *Counter
	interval time.Duration

	stopFlag  int32
	closeChan chan struct{}
}

func NewBlockClock(start uint64, interval time.Duration) *BlockClock {
	if interval <= 0 {
		interval = DefaultBlockInterval
	}
	c := &BlockClock{
		counter:   NewCounter(start),
		interval:  interval,
		closeChan: make(chan struct{}),
	}

	go c.run()

	return c
}

func (c *BlockClock) Height() uint64 {
	return c.counter.Height()
}

func (c *BlockClock) Close() {
	if first := atomic.CompareAndSwapInt32(&c.stopFlag, int32(0), int32(1)); !first {
		return
	}
	c.closeChan <- struct{}{}
	<-c.closeChan
}

func (c *BlockClock) toDie() bool {
	return atomic.LoadInt32(&(c.stopFlag)) == int32(1)
}

func (c *BlockClock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closeChan:
			c.closeChan <- struct{}{}
			return
		case <-ticker.C:
			if c.toDie() {
				continue
			}
			height := c.counter.Advance()
			iLogger.Debugf(nil, "[BlockClock] new block height=%d", height)
		}
	}
}
