package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if now := mock.Now(); !now.Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, now)
	}

	mock.Advance(time.Hour)
	mock.AdvanceFrames(10, 16*time.Millisecond)
	want := start.Add(time.Hour + 160*time.Millisecond)
	if now := mock.Now(); !now.Equal(want) {
		t.Errorf("Expected %v after advances, got %v", want, now)
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if got := mock.Now().Sub(time.Unix(0, 0)); got != time.Second {
		t.Errorf("Expected 1s total advance, got %v", got)
	}
}
