// Package animation owns the mutable playback state that advances the
// simulated day. The geometry engine itself is stateless; everything that
// changes between frames lives in a Driver.
package animation

import (
	"errors"
	"math"
	"sync"

	"github.com/chrissnell/moonorbit/pkg/orbit"
)

// ErrInvalidDay is returned when a scrub target is not a finite number
var ErrInvalidDay = errors.New("day must be a finite number")

// State is a snapshot of playback
type State struct {
	Day       float64 `json:"day"`
	Playing   bool    `json:"playing"`
	Speed     float64 `json:"speed"`
	Scrubbing bool    `json:"scrubbing"`
	Ticks     uint64  `json:"ticks"`
}

// Driver advances the day on each tick. All methods are safe for concurrent
// use; a user scrub and a tick are serialized by the same lock, and Tick
// re-checks the flags under it, so the latest explicit day always wins.
type Driver struct {
	mu    sync.Mutex
	state State
	year  float64
}

// NewDriver creates a paused driver at day zero
func NewDriver(c orbit.Constants, speed float64) (*Driver, error) {
	if err := orbit.ValidateSpeed(speed); err != nil {
		return nil, err
	}
	return &Driver{
		state: State{Speed: speed},
		year:  c.EarthYearDays,
	}, nil
}

// State returns a copy of the current state
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Tick advances the day by the current speed. It does nothing while paused
// or while the user is scrubbing, and reports whether the day moved.
func (d *Driver) Tick() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.Playing || d.state.Scrubbing {
		return false
	}
	d.state.Day = orbit.WrapDay(d.state.Day+d.state.Speed, d.year)
	d.state.Ticks++
	return true
}

// Play resumes playback
func (d *Driver) Play() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Playing = true
}

// Pause stops playback
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Playing = false
}

// Toggle flips between playing and paused and returns the new Playing value
func (d *Driver) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Playing = !d.state.Playing
	return d.state.Playing
}

// SetSpeed changes the per-tick increment
func (d *Driver) SetSpeed(speed float64) error {
	if err := orbit.ValidateSpeed(speed); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Speed = speed
	return nil
}

// SetDay jumps to a day, wrapped into the year. Like dragging the slider, it
// pauses playback.
func (d *Driver) SetDay(day float64) error {
	if math.IsNaN(day) || math.IsInf(day, 0) {
		return ErrInvalidDay
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Playing = false
	d.state.Day = orbit.WrapDay(day, d.year)
	return nil
}

// BeginScrub marks the user as dragging; ticks are skipped until EndScrub
func (d *Driver) BeginScrub() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Scrubbing = true
}

// EndScrub releases the scrub hold
func (d *Driver) EndScrub() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Scrubbing = false
}

// Reset returns to day zero and pauses
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Day = 0
	d.state.Playing = false
	d.state.Scrubbing = false
}
