package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
)

func newTestPlayer() (*Player, *[]beep.Streamer, *time.Time) {
	p := NewPlayer(Config{Volume: 1}, nil)
	var got []beep.Streamer
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p.sink = func(s beep.Streamer) { got = append(got, s) }
	p.now = func() time.Time { return now }
	return p, &got, &now
}

// TestPlayerGracefulDegradation verifies operations don't panic without a device
func TestPlayerGracefulDegradation(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Player panicked without initialization: %v", r)
		}
	}()

	p := NewPlayer(DefaultConfig(), nil)
	p.OnFire(neural.FireEvent{Spawned: 1})
	if p.Enabled() {
		t.Error("Expected disabled player by default")
	}
	p.Close()
	p.Close()
}

func TestPlayerOnFire(t *testing.T) {
	p, got, now := newTestPlayer()

	p.OnFire(neural.FireEvent{Spawned: 1})
	if len(*got) != 0 {
		t.Fatal("Expected no chime before enable")
	}

	p.SetEnabled(true)
	if !p.Enabled() {
		t.Fatal("Expected enabled player")
	}

	p.OnFire(neural.FireEvent{Layer: 1, Spawned: 2})
	if len(*got) != 1 {
		t.Fatalf("Expected 1 chime, got %d", len(*got))
	}

	// Too soon
	*now = now.Add(parameter.ChimeMinGap / 2)
	p.OnFire(neural.FireEvent{Spawned: 1})
	if len(*got) != 1 {
		t.Errorf("Expected rate-limited chime, got %d", len(*got))
	}

	*now = now.Add(parameter.ChimeMinGap)
	p.OnFire(neural.FireEvent{Spawned: 1})
	if len(*got) != 2 {
		t.Errorf("Expected second chime after gap, got %d", len(*got))
	}

	// Fires that spawned nothing stay silent
	*now = now.Add(time.Second)
	p.OnFire(neural.FireEvent{Spawned: 0})
	if p.Played() != 2 {
		t.Errorf("Expected 2 played, got %d", p.Played())
	}

	p.SetEnabled(false)
	*now = now.Add(time.Second)
	p.OnFire(neural.FireEvent{Spawned: 1})
	if len(*got) != 2 {
		t.Errorf("Expected silence after disable, got %d", len(*got))
	}
}

func TestPlayerFailedInitStaysSilent(t *testing.T) {
	p := NewPlayer(DefaultConfig(), nil)
	p.failed = true

	if err := p.Init(); err == nil {
		t.Error("Expected error from failed player")
	}
	p.SetEnabled(true)
	if p.Enabled() {
		t.Error("Expected player to refuse enable after failed init")
	}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(Config{SampleRate: -1, Volume: -2}, nil)
	if p.rate != beep.SampleRate(parameter.AudioSampleRate) {
		t.Errorf("Expected default sample rate, got %d", p.rate)
	}
	if p.cfg.Volume != 0 {
		t.Errorf("Expected clamped volume, got %f", p.cfg.Volume)
	}
}
