package engine

import (
	"sync"
	"time"

	"github.com/vara-s830/playerd/internal/domain/track"
)

// NullEngine produces no audio but keeps wall-clock playback position,
// so headless runs and tests see realistic progress.
type NullEngine struct {
	mu sync.Mutex

	loaded   bool
	duration time.Duration
	start    time.Time
	pausedAt time.Time     // zero when not paused
	paused   time.Duration // total time spent paused

	errs chan error
}

// NewNull creates a silent engine.
func NewNull() *NullEngine {
	return &NullEngine{errs: make(chan error, 1)}
}

// Play implements Engine.
func (e *NullEngine) Play(t track.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loaded = true
	e.duration = t.Duration
	e.start = time.Now()
	e.pausedAt = time.Time{}
	e.paused = 0
}

// Pause implements Engine.
func (e *NullEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded || !e.pausedAt.IsZero() {
		return
	}
	e.pausedAt = time.Now()
}

// Resume implements Engine.
func (e *NullEngine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded || e.pausedAt.IsZero() {
		return
	}
	e.paused += time.Since(e.pausedAt)
	e.pausedAt = time.Time{}
}

// Stop implements Engine.
func (e *NullEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loaded = false
	e.duration = 0
	e.paused = 0
	e.pausedAt = time.Time{}
}

// Seek implements Engine.
func (e *NullEngine) Seek(pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return
	}
	e.start = time.Now().Add(-pos)
	e.paused = 0
	if !e.pausedAt.IsZero() {
		e.pausedAt = time.Now()
	}
}

// Position implements Engine.
func (e *NullEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return 0
	}

	now := time.Now()
	elapsed := now.Sub(e.start) - e.paused
	if !e.pausedAt.IsZero() {
		elapsed -= now.Sub(e.pausedAt)
	}

	if elapsed < 0 {
		return 0
	}
	if e.duration > 0 && elapsed > e.duration {
		return e.duration
	}
	return elapsed
}

// Errors implements Engine.
func (e *NullEngine) Errors() <-chan error {
	return e.errs
}

// Close implements Engine.
func (e *NullEngine) Close() error {
	return nil
}
