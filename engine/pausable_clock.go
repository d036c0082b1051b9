package engine

import (
	"sync"
	"time"
)

// PausableClock measures simulation time that stops while the view is hidden
// Safe for concurrent use: Pause/Resume may come from the input goroutine
type PausableClock struct {
	mu sync.RWMutex

	provider    TimeProvider
	start       time.Time     // Real time at construction
	paused      bool          // Current pause state
	pauseStart  time.Time     // Real time when the current pause began
	totalPaused time.Duration // Cumulative completed pause duration
}

// NewPausableClock creates a running clock, nil provider uses monotonic time
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Elapsed returns running time since construction, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		// Frozen at the pause point
		return pc.pauseStart.Sub(pc.start) - pc.totalPaused
	}
	return pc.provider.Now().Sub(pc.start) - pc.totalPaused
}

// Pause stops time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.provider.Now()
}

// Resume continues time advancement, the paused span is never replayed
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.provider.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
