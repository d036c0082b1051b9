// Package config loads, validates and watches synapse configuration files.
//
// A Config is read from TOML or YAML (chosen by file extension), then
// overridden by SYNAPSE_* environment variables. Missing files yield defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/snappingturtle/synapse/audio"
	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
)

var (
	// ErrInvalid marks a configuration value that fails validation
	ErrInvalid = errors.New("invalid config")

	// ErrUnknownFormat marks a config path with an unsupported extension
	ErrUnknownFormat = errors.New("unknown config format")
)

// Config is the full host configuration
type Config struct {
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Layout     LayoutConfig     `toml:"layout" yaml:"layout"`
	Render     RenderConfig     `toml:"render" yaml:"render"`
	Sandbox    SandboxConfig    `toml:"sandbox" yaml:"sandbox"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio"`
}

// SimulationConfig controls firing and signal propagation
type SimulationConfig struct {
	Seed              int64   `toml:"seed" yaml:"seed"` // 0 seeds from the clock
	AutoFire          bool    `toml:"auto_fire" yaml:"auto_fire"`
	FireIntervalMin   float64 `toml:"fire_interval_min" yaml:"fire_interval_min"`
	FireIntervalMax   float64 `toml:"fire_interval_max" yaml:"fire_interval_max"`
	InitialFireDelay  float64 `toml:"initial_fire_delay" yaml:"initial_fire_delay"`
	PointerFire       bool    `toml:"pointer_fire" yaml:"pointer_fire"`
	HoverRadius       float64 `toml:"hover_radius" yaml:"hover_radius"`
	HoverDwell        float64 `toml:"hover_dwell" yaml:"hover_dwell"`
	HoverCooldown     float64 `toml:"hover_cooldown" yaml:"hover_cooldown"`
	SignalSpeedMin    float64 `toml:"signal_speed_min" yaml:"signal_speed_min"`
	SignalSpeedMax    float64 `toml:"signal_speed_max" yaml:"signal_speed_max"`
	GenerationSpeedup float64 `toml:"generation_speedup" yaml:"generation_speedup"`
	MaxGeneration     int     `toml:"max_generation" yaml:"max_generation"`
	MaxSignals        int     `toml:"max_signals" yaml:"max_signals"`
	EdgeSignalCap     int     `toml:"edge_signal_cap" yaml:"edge_signal_cap"` // 0 uses the layout default
	ActivationDecay   float64 `toml:"activation_decay" yaml:"activation_decay"`
	MaxFrameDelta     float64 `toml:"max_frame_delta" yaml:"max_frame_delta"`
}

// LayoutConfig selects and tunes the topology generator
type LayoutConfig struct {
	Name            string  `toml:"name" yaml:"name"` // layered | grid
	Layers          int     `toml:"layers" yaml:"layers"`
	NodesPerLayer   int     `toml:"nodes_per_layer" yaml:"nodes_per_layer"`
	EdgeProbability float64 `toml:"edge_probability" yaml:"edge_probability"`
	SkipProbability float64 `toml:"skip_probability" yaml:"skip_probability"`
	CellWidth       float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight      float64 `toml:"cell_height" yaml:"cell_height"`
	ReservedZone    bool    `toml:"reserved_zone" yaml:"reserved_zone"`
	Padding         float64 `toml:"padding" yaml:"padding"`
}

// RenderConfig toggles decorative passes
type RenderConfig struct {
	Ripples        bool    `toml:"ripples" yaml:"ripples"`
	RippleMaxAge   float64 `toml:"ripple_max_age" yaml:"ripple_max_age"`
	AfterglowDecay float64 `toml:"afterglow_decay" yaml:"afterglow_decay"`
	EdgeFade       bool    `toml:"edge_fade" yaml:"edge_fade"`
	PointerGlow    bool    `toml:"pointer_glow" yaml:"pointer_glow"`
}

// SandboxConfig controls the terminal host
type SandboxConfig struct {
	FPS   int  `toml:"fps" yaml:"fps"`
	Scale int  `toml:"scale" yaml:"scale"` // Canvas supersampling per cell
	HUD   bool `toml:"hud" yaml:"hud"`
}

// AudioConfig controls fire chimes
type AudioConfig struct {
	Enabled    bool    `toml:"enabled" yaml:"enabled"`
	Volume     float64 `toml:"volume" yaml:"volume"`
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate"`
}

// Default returns the tuned configuration
func Default() *Config {
	p := neural.DefaultParams()
	l := neural.DefaultLayeredLayout()
	g := neural.DefaultGridLayout()
	a := audio.DefaultConfig()

	return &Config{
		Simulation: SimulationConfig{
			AutoFire:          p.AutoFire,
			FireIntervalMin:   p.FireIntervalMin,
			FireIntervalMax:   p.FireIntervalMax,
			InitialFireDelay:  p.InitialFireDelay,
			PointerFire:       p.PointerFire,
			HoverRadius:       p.HoverRadius,
			HoverDwell:        p.HoverDwell,
			HoverCooldown:     p.HoverCooldown,
			SignalSpeedMin:    p.SignalSpeedMin,
			SignalSpeedMax:    p.SignalSpeedMax,
			GenerationSpeedup: p.GenerationSpeedup,
			MaxGeneration:     p.MaxGeneration,
			MaxSignals:        p.MaxSignals,
			ActivationDecay:   p.ActivationDecay,
			MaxFrameDelta:     p.MaxFrameDelta,
		},
		Layout: LayoutConfig{
			Name:            neural.LayoutLayered,
			EdgeProbability: l.EdgeProbability,
			SkipProbability: l.SkipProbability,
			CellWidth:       g.CellWidth,
			CellHeight:      g.CellHeight,
			ReservedZone:    true,
			Padding:         l.Padding,
		},
		Render: RenderConfig{
			Ripples:        p.Ripples,
			RippleMaxAge:   p.RippleMaxAge,
			AfterglowDecay: p.AfterglowDecay,
			EdgeFade:       p.EdgeFade,
			PointerGlow:    p.PointerGlow,
		},
		Sandbox: SandboxConfig{
			FPS:   int(parameter.ReferenceFPS),
			Scale: 2,
			HUD:   true,
		},
		Audio: AudioConfig{
			Enabled:    a.Enabled,
			Volume:     a.Volume,
			SampleRate: a.SampleRate,
		},
	}
}

// Validate reports every out-of-range value, each wrapping ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	s := c.Simulation
	check(s.FireIntervalMin > 0, "simulation.fire_interval_min must be positive, got %v", s.FireIntervalMin)
	check(s.FireIntervalMax >= s.FireIntervalMin, "simulation.fire_interval_max %v below fire_interval_min %v", s.FireIntervalMax, s.FireIntervalMin)
	check(s.InitialFireDelay >= 0, "simulation.initial_fire_delay must not be negative, got %v", s.InitialFireDelay)
	check(s.HoverRadius >= 0, "simulation.hover_radius must not be negative, got %v", s.HoverRadius)
	check(s.HoverDwell >= 0, "simulation.hover_dwell must not be negative, got %v", s.HoverDwell)
	check(s.HoverCooldown >= 0, "simulation.hover_cooldown must not be negative, got %v", s.HoverCooldown)
	check(s.SignalSpeedMin > 0, "simulation.signal_speed_min must be positive, got %v", s.SignalSpeedMin)
	check(s.SignalSpeedMax >= s.SignalSpeedMin, "simulation.signal_speed_max %v below signal_speed_min %v", s.SignalSpeedMax, s.SignalSpeedMin)
	check(s.GenerationSpeedup >= 0, "simulation.generation_speedup must not be negative, got %v", s.GenerationSpeedup)
	check(s.MaxGeneration >= 1, "simulation.max_generation must be at least 1, got %d", s.MaxGeneration)
	check(s.MaxSignals >= 1, "simulation.max_signals must be at least 1, got %d", s.MaxSignals)
	check(s.EdgeSignalCap >= 0, "simulation.edge_signal_cap must not be negative, got %d", s.EdgeSignalCap)
	check(s.ActivationDecay > 0 && s.ActivationDecay <= 1, "simulation.activation_decay must be in (0, 1], got %v", s.ActivationDecay)
	check(s.MaxFrameDelta > 0, "simulation.max_frame_delta must be positive, got %v", s.MaxFrameDelta)

	l := c.Layout
	_, known := neural.LayoutByName(l.Name)
	check(known, "layout.name %q is not one of %s, %s", l.Name, neural.LayoutLayered, neural.LayoutGrid)
	check(l.Layers >= 0, "layout.layers must not be negative, got %d", l.Layers)
	check(l.NodesPerLayer >= 0, "layout.nodes_per_layer must not be negative, got %d", l.NodesPerLayer)
	check(l.EdgeProbability >= 0 && l.EdgeProbability <= 1, "layout.edge_probability must be in [0, 1], got %v", l.EdgeProbability)
	check(l.SkipProbability >= 0 && l.SkipProbability <= 1, "layout.skip_probability must be in [0, 1], got %v", l.SkipProbability)
	check(l.CellWidth > 0 && l.CellHeight > 0, "layout.cell_width and cell_height must be positive, got %vx%v", l.CellWidth, l.CellHeight)
	check(l.Padding >= 0, "layout.padding must not be negative, got %v", l.Padding)

	r := c.Render
	check(r.RippleMaxAge > 0, "render.ripple_max_age must be positive, got %v", r.RippleMaxAge)
	check(r.AfterglowDecay >= 0, "render.afterglow_decay must not be negative, got %v", r.AfterglowDecay)

	check(c.Sandbox.FPS >= 1 && c.Sandbox.FPS <= 240, "sandbox.fps must be in 1..240, got %d", c.Sandbox.FPS)
	check(c.Sandbox.Scale >= 1 && c.Sandbox.Scale <= 8, "sandbox.scale must be in 1..8, got %d", c.Sandbox.Scale)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %v", c.Audio.Volume)
	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %d", c.Audio.SampleRate)

	return errors.Join(errs...)
}

// Params maps the simulation and render sections onto simulator parameters
func (c *Config) Params() neural.Params {
	p := neural.DefaultParams()
	s := c.Simulation

	p.AutoFire = s.AutoFire
	p.FireIntervalMin = s.FireIntervalMin
	p.FireIntervalMax = s.FireIntervalMax
	p.InitialFireDelay = s.InitialFireDelay
	p.PointerFire = s.PointerFire
	p.HoverRadius = s.HoverRadius
	p.HoverDwell = s.HoverDwell
	p.HoverCooldown = s.HoverCooldown
	p.SignalSpeedMin = s.SignalSpeedMin
	p.SignalSpeedMax = s.SignalSpeedMax
	p.GenerationSpeedup = s.GenerationSpeedup
	p.MaxGeneration = s.MaxGeneration
	p.MaxSignals = s.MaxSignals
	p.EdgeSignalCap = s.EdgeSignalCap
	p.ActivationDecay = s.ActivationDecay
	p.MaxFrameDelta = s.MaxFrameDelta

	p.Ripples = c.Render.Ripples
	p.RippleMaxAge = c.Render.RippleMaxAge
	p.AfterglowDecay = c.Render.AfterglowDecay
	p.EdgeFade = c.Render.EdgeFade
	p.PointerGlow = c.Render.PointerGlow
	return p
}

// NeuralLayout builds the configured topology generator
// Unknown names fall back to the layered layout.
func (c *Config) NeuralLayout() neural.Layout {
	l := c.Layout
	if l.Name == neural.LayoutGrid {
		g := neural.DefaultGridLayout()
		g.CellWidth = l.CellWidth
		g.CellHeight = l.CellHeight
		g.Padding = l.Padding
		if !l.ReservedZone {
			g.ZoneWidth, g.ZoneHeight = 0, 0
		}
		return g
	}

	layered := neural.DefaultLayeredLayout()
	layered.Layers = l.Layers
	layered.NodesPerLayer = l.NodesPerLayer
	layered.EdgeProbability = l.EdgeProbability
	layered.SkipProbability = l.SkipProbability
	layered.Padding = l.Padding
	return layered
}

// AudioPlayerConfig maps the audio section onto player settings
func (c *Config) AudioPlayerConfig() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		Volume:     c.Audio.Volume,
		SampleRate: c.Audio.SampleRate,
	}
}
