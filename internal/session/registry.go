// Package session keeps one animation driver per remote viewer and ticks all
// of them from a single scheduler.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/chrissnell/moonorbit/internal/animation"
	"github.com/chrissnell/moonorbit/pkg/orbit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired session IDs
var ErrNotFound = errors.New("session not found")

// ErrTooManySessions is returned by Create once the registry is full
var ErrTooManySessions = errors.New("too many sessions")

// Session is one viewer's playback
type Session struct {
	ID       uuid.UUID
	Created  time.Time
	Driver   *animation.Driver
	lastSeen time.Time
}

// Registry holds sessions. Idle sessions are dropped after ttl.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*Session
	constants orbit.Constants
	speed     float64
	ttl       time.Duration
	limit     int
	now       func() time.Time
	logger    *zap.SugaredLogger
}

// NewRegistry creates an empty registry. New sessions start paused at
// defaultSpeed. A zero ttl disables expiry and a zero limit leaves the number
// of sessions unbounded.
func NewRegistry(c orbit.Constants, defaultSpeed float64, ttl time.Duration, limit int, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		sessions:  make(map[uuid.UUID]*Session),
		constants: c,
		speed:     defaultSpeed,
		ttl:       ttl,
		limit:     limit,
		now:       time.Now,
		logger:    logger,
	}
}

// Create starts a new session
func (r *Registry) Create() (*Session, error) {
	d, err := animation.NewDriver(r.constants, r.speed)
	if err != nil {
		return nil, err
	}

	now := r.now()
	s := &Session{
		ID:       uuid.New(),
		Created:  now,
		Driver:   d,
		lastSeen: now,
	}

	r.mu.Lock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		r.mu.Unlock()
		return nil, ErrTooManySessions
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Debugf("created session %s", s.ID)
	return s, nil
}

// Get looks up a session by its string ID and refreshes its idle timer
func (r *Registry) Get(id string) (*Session, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	s.lastSeen = r.now()
	return s, nil
}

// Delete removes a session
func (r *Registry) Delete(id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[key]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, key)
	r.logger.Debugf("deleted session %s", key)
	return nil
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Tick advances every session once
func (r *Registry) Tick() {
	r.mu.RLock()
	drivers := make([]*animation.Driver, 0, len(r.sessions))
	for _, s := range r.sessions {
		drivers = append(drivers, s.Driver)
	}
	r.mu.RUnlock()

	for _, d := range drivers {
		d.Tick()
	}
}

// Expire removes sessions idle for longer than the ttl and returns how many
// were dropped
func (r *Registry) Expire() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Infof("expired %d idle sessions", n)
	}
	return n
}

// Attach ticks the registry from s
func (r *Registry) Attach(s animation.Scheduler) {
	s.OnTick(r.Tick)
}
