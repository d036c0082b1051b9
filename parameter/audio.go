package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioVolume is the default master volume (0..1)
	AudioVolume = 0.35
)

// Fire Chime
const (
	// ChimeDuration is the full chime length
	ChimeDuration = 700 * time.Millisecond

	// ChimeAttack is the fade-in of both partials
	ChimeAttack = 4 * time.Millisecond

	// ChimeFundamentalRelease and ChimeOvertoneRelease shape the bell tail
	ChimeFundamentalRelease = 650 * time.Millisecond
	ChimeOvertoneRelease    = 220 * time.Millisecond

	// ChimeBaseFreq is the pitch of layer 0 (C5)
	ChimeBaseFreq = 523.25

	// ChimeMinGap drops chimes that arrive faster than this
	ChimeMinGap = 60 * time.Millisecond

	// ChimeBurstVolume scales burst chimes, which fire many nodes at once
	ChimeBurstVolume = 0.5
)

// ChimeScale is the pentatonic semitone ladder walked by layer index
var ChimeScale = [...]int{0, 2, 4, 7, 9, 12, 14, 16, 19, 21}
