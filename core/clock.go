package core

import (
	"sync"
	"time"
)

// Clock is the environment time source shared by every engine. Time is unix
// seconds and block is the current height. It only moves when told to.
type Clock struct {
	mu    sync.RWMutex
	now   uint64
	block uint64
}

// NewClock starts a clock at the given time and height. A zero time uses the
// wall clock.
func NewClock(now, block uint64) *Clock {
	if now == 0 {
		now = uint64(time.Now().Unix())
	}
	return &Clock{now: now, block: block}
}

func (c *Clock) Now() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *Clock) Block() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.block
}

// Advance moves time and height forward.
func (c *Clock) Advance(seconds, blocks uint64) {
	c.mu.Lock()
	c.now += seconds
	c.block += blocks
	c.mu.Unlock()
}

// Set moves the clock to an absolute position. Values behind the current
// position are ignored so the clock never runs backwards.
func (c *Clock) Set(now, block uint64) {
	c.mu.Lock()
	if now > c.now {
		c.now = now
	}
	if block > c.block {
		c.block = block
	}
	c.mu.Unlock()
}
