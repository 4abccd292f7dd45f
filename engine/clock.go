package engine

import "time"

// Clock measures a single turn
type Clock struct {
	limit time.Duration
	start time.Time
	now   func() time.Time
}

func NewClock(limit time.Duration) *Clock {
	return &Clock{limit: limit, now: time.Now}
}

// Start restarts the turn
func (c *Clock) Start() {
	c.start = c.now()
}

func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// TimeLeft is handed to the searchers as their deadline. It goes negative once
// the turn is over.
func (c *Clock) TimeLeft() time.Duration {
	return c.limit - c.Elapsed()
}

func (c *Clock) Expired() bool {
	return c.Elapsed() > c.limit
}
