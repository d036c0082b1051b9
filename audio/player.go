package audio

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
)

// Config holds player settings
type Config struct {
	Enabled    bool
	Volume     float64
	SampleRate int
}

// DefaultConfig returns audio disabled at the default volume
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     parameter.AudioVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

// Player turns fire events into chimes
// Every method is safe without a working audio device; a failed speaker
// init leaves the player permanently silent.
type Player struct {
	mu      sync.Mutex
	cfg     Config
	rate    beep.SampleRate
	mixer   *beep.Mixer
	enabled bool
	ready   bool
	failed  bool
	last    time.Time
	played  uint64

	now  func() time.Time
	sink func(beep.Streamer) // nil plays through the speaker mixer
	log  *slog.Logger
}

// NewPlayer creates a silent player; hosts call SetEnabled(cfg.Enabled) to open the speaker
func NewPlayer(cfg Config, log *slog.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	if cfg.Volume < 0 {
		cfg.Volume = 0
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		now:   time.Now,
		log:   log,
	}
}

// Init opens the speaker once
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initLocked()
}

func (p *Player) initLocked() error {
	if p.ready || p.sink != nil {
		return nil
	}
	if p.failed {
		return fmt.Errorf("audio unavailable")
	}

	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		p.failed = true
		p.log.Warn("audio init failed, running silent", "error", err)
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// SetEnabled toggles chimes, opening the speaker if needed
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if on && p.initLocked() != nil {
		p.enabled = false
		return
	}
	p.enabled = on
}

// Enabled reports whether chimes are audible
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Played returns the number of chimes started
func (p *Player) Played() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// OnFire is a neural fire hook
// Chimes closer together than ChimeMinGap are dropped.
func (p *Player) OnFire(ev neural.FireEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || ev.Spawned == 0 {
		return
	}
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < parameter.ChimeMinGap {
		return
	}
	p.last = now
	p.played++

	s := CreateChime(ev, p.rate, p.cfg.Volume)
	if p.sink != nil {
		p.sink(s)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending chimes and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled = false
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}
