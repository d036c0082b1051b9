package neural

import (
	"github.com/snappingturtle/synapse/parameter"
)

// Params holds the simulation tunables
// Layout-specific tunables live on the Layout implementations
type Params struct {
	MaxFrameDelta float64

	OscillationAmplitude float64
	OscillationSecondary float64
	OscillationSpeed     float64
	RepulsionRadius      float64
	RepulsionStrength    float64

	ActivationDecay   float64
	ActivationEpsilon float64
	ArrivalBoost      float64

	SignalSpeedMin    float64
	SignalSpeedMax    float64
	GenerationSpeedup float64
	MaxGeneration     int
	MaxSignals        int
	EdgeSignalCap     int // 0 uses the layout's cap

	AutoFire         bool
	FireIntervalMin  float64
	FireIntervalMax  float64
	InitialFireDelay float64

	PointerFire   bool
	HoverRadius   float64
	HoverDwell    float64
	HoverCooldown float64

	Ripples        bool
	RippleMaxAge   float64
	RippleRadius   float64
	MaxRipples     int
	AfterglowDecay float64

	EdgeFade       bool
	EdgeFadeMargin float64
	PointerGlow    bool
}

// DefaultParams returns the tuned hero background parameters
func DefaultParams() Params {
	return Params{
		MaxFrameDelta: parameter.MaxFrameDelta,

		OscillationAmplitude: parameter.OscillationAmplitude,
		OscillationSecondary: parameter.OscillationSecondary,
		OscillationSpeed:     parameter.OscillationSpeed,
		RepulsionRadius:      parameter.RepulsionRadius,
		RepulsionStrength:    parameter.RepulsionStrength,

		ActivationDecay:   parameter.ActivationDecay,
		ActivationEpsilon: parameter.ActivationEpsilon,
		ArrivalBoost:      parameter.ArrivalBoost,

		SignalSpeedMin:    parameter.SignalSpeedMin,
		SignalSpeedMax:    parameter.SignalSpeedMax,
		GenerationSpeedup: parameter.GenerationSpeedup,
		MaxGeneration:     parameter.MaxGeneration,
		MaxSignals:        parameter.MaxSignals,

		AutoFire:         true,
		FireIntervalMin:  parameter.FireIntervalMin,
		FireIntervalMax:  parameter.FireIntervalMax,
		InitialFireDelay: parameter.InitialFireDelay,

		PointerFire:   true,
		HoverRadius:   parameter.HoverRadius,
		HoverDwell:    parameter.HoverDwell,
		HoverCooldown: parameter.HoverCooldown,

		Ripples:        true,
		RippleMaxAge:   parameter.RippleMaxAge,
		RippleRadius:   parameter.RippleRadius,
		MaxRipples:     parameter.MaxRipples,
		AfterglowDecay: parameter.AfterglowDecay,

		EdgeFade:       true,
		EdgeFadeMargin: parameter.EdgeFadeMargin,
		PointerGlow:    true,
	}
}

// normalize repairs values that would break the step invariants
func (p Params) normalize() Params {
	d := DefaultParams()
	if p.MaxFrameDelta <= 0 {
		p.MaxFrameDelta = d.MaxFrameDelta
	}
	if p.ActivationDecay <= 0 || p.ActivationDecay > 1 {
		p.ActivationDecay = d.ActivationDecay
	}
	if p.ActivationEpsilon < 0 {
		p.ActivationEpsilon = 0
	}
	if p.SignalSpeedMin <= 0 {
		p.SignalSpeedMin = d.SignalSpeedMin
	}
	if p.SignalSpeedMax < p.SignalSpeedMin {
		p.SignalSpeedMax = p.SignalSpeedMin
	}
	if !(p.GenerationSpeedup >= 0) {
		p.GenerationSpeedup = 0
	}
	if p.MaxGeneration < 1 {
		p.MaxGeneration = 1
	}
	if p.MaxSignals < 1 {
		p.MaxSignals = d.MaxSignals
	}
	if p.EdgeSignalCap < 0 {
		p.EdgeSignalCap = 0
	}
	if p.FireIntervalMin <= 0 {
		p.FireIntervalMin = d.FireIntervalMin
	}
	if p.FireIntervalMax < p.FireIntervalMin {
		p.FireIntervalMax = p.FireIntervalMin
	}
	if p.MaxRipples < 0 {
		p.MaxRipples = 0
	}
	if p.RippleMaxAge <= 0 {
		p.RippleMaxAge = d.RippleMaxAge
	}
	return p
}
