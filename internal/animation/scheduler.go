package animation

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval is roughly one display frame at 60 Hz
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler invokes registered callbacks once per tick until Run returns
type Scheduler interface {
	OnTick(fn func())
	Run(ctx context.Context) error
}

type callbacks struct {
	mu  sync.RWMutex
	fns []func()
}

func (c *callbacks) add(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, fn)
}

func (c *callbacks) fire() {
	c.mu.RLock()
	fns := make([]func(), len(c.fns))
	copy(fns, c.fns)
	c.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// TickerScheduler fires callbacks from a time.Ticker
type TickerScheduler struct {
	interval time.Duration
	cbs      callbacks
}

// NewTickerScheduler creates a scheduler ticking every interval. A
// non-positive interval falls back to DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{interval: interval}
}

// OnTick registers fn to run on every tick
func (s *TickerScheduler) OnTick(fn func()) {
	s.cbs.add(fn)
}

// Interval returns the tick period
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Run blocks, ticking until ctx is cancelled
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.cbs.fire()
		}
	}
}

// ManualScheduler ticks only when Step is called
type ManualScheduler struct {
	cbs callbacks
}

// OnTick registers fn to run on every Step
func (s *ManualScheduler) OnTick(fn func()) {
	s.cbs.add(fn)
}

// Step fires n ticks synchronously
func (s *ManualScheduler) Step(n int) {
	for i := 0; i < n; i++ {
		s.cbs.fire()
	}
}

// Run blocks until ctx is cancelled; ticks come from Step
func (s *ManualScheduler) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Attach registers the driver's Tick on s
func Attach(s Scheduler, d *Driver) {
	s.OnTick(func() { d.Tick() })
}
