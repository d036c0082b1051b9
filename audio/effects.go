package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
			vol *= vol // Exponential-ish bell tail
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume; math.Log2(0) is -Inf, so 0 is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// ChimeFrequency returns the fundamental for a fire from the given layer
// Layers walk a pentatonic ladder so deep networks never hit a dissonant step.
func ChimeFrequency(layer int) float64 {
	if layer < 0 {
		layer = 0
	}
	n := len(parameter.ChimeScale)
	semis := parameter.ChimeScale[layer%n] + 24*(layer/n)
	semis = min(semis, 36)
	return parameter.ChimeBaseFreq * math.Pow(2, float64(semis)/12)
}

// ChimeVolume returns the relative loudness for a fire source
func ChimeVolume(src neural.FireSource) float64 {
	switch src {
	case neural.SourceBurst:
		return parameter.ChimeBurstVolume
	case neural.SourceAuto:
		return 0.7
	default:
		return 1.0
	}
}

// CreateChime generates a short bell for a fire event
func CreateChime(ev neural.FireEvent, rate beep.SampleRate, volume float64) beep.Streamer {
	freq := ChimeFrequency(ev.Layer)
	d := parameter.ChimeDuration

	fund := NewOscillator(freq, d, WaveSine, rate)
	fundShaped := NewEnvelope(fund, d, parameter.ChimeAttack, parameter.ChimeFundamentalRelease, rate)

	// Slightly inharmonic overtone gives the bell colour
	over := NewOscillator(freq*2.76, d, WaveSine, rate)
	overShaped := NewEnvelope(over, d, parameter.ChimeAttack, parameter.ChimeOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.25),
	)
	return newVolume(mixed, volume*ChimeVolume(ev.Source))
}
