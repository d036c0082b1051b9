package engine

import "time"

// TimeProvider supplies wall time to the frame clock
// Tests substitute MockTimeProvider to step frames deterministically
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns time.Now, which carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
