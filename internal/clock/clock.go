package clock

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Zero is the readout shown while no session is running.
const Zero = "00:00:00"

// DefaultInterval is how often the readout refreshes during a session.
const DefaultInterval = 250 * time.Millisecond

// Readout receives the running-time text.
type Readout interface {
	ShowTime(text string)
}

// Format renders the wall-clock time of t as H:M:S without padding.
func Format(t time.Time) string {
	return fmt.Sprintf("%d:%d:%d", t.Hour(), t.Minute(), t.Second())
}

// TimeClock measures a single session and refreshes a Readout while it runs.
// The refresh ticker lives only between Start and Stop.
type TimeClock struct {
	mu        sync.Mutex
	readout   Readout
	interval  time.Duration
	now       func() time.Time
	running   bool
	startedAt time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
}

type Option func(*TimeClock)

// WithInterval sets the refresh interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *TimeClock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithNow replaces the wall clock, mostly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *TimeClock) {
		if now != nil {
			c.now = now
		}
	}
}

func New(readout Readout, opts ...Option) *TimeClock {
	c := &TimeClock{
		readout:  readout,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.startedAt = c.now()
	return c
}

// Start begins a session. Starting a running clock does nothing.
func (c *TimeClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	c.running = true
	c.startedAt = c.now()
	c.stopChan = make(chan struct{})
	c.doneChan = make(chan struct{})

	go c.run(c.stopChan, c.doneChan)
}

func (c *TimeClock) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.update()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.update()
		}
	}
}

func (c *TimeClock) update() {
	if c.readout != nil {
		c.readout.ShowTime(Format(c.now()))
	}
}

// Stop ends the session and returns the whole seconds elapsed since Start.
// Without a prior Start the result is measured from construction or from the
// previous Stop. The readout is reset to Zero after the ticker has exited.
func (c *TimeClock) Stop() int {
	c.mu.Lock()
	now := c.now()
	elapsed := int(math.Floor(now.Sub(c.startedAt).Seconds()))
	c.startedAt = now
	stop, done := c.stopChan, c.doneChan
	wasRunning := c.running
	c.running = false
	c.stopChan, c.doneChan = nil, nil
	c.mu.Unlock()

	if wasRunning {
		close(stop)
		<-done
	}

	if c.readout != nil {
		c.readout.ShowTime(Zero)
	}
	return elapsed
}

func (c *TimeClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *TimeClock) StartedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startedAt
}
