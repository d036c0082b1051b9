package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually advanced time source
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider creates a mock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// AdvanceFrames moves time forward by n frame intervals
func (m *MockTimeProvider) AdvanceFrames(n int, interval time.Duration) {
	m.Advance(time.Duration(n) * interval)
}
