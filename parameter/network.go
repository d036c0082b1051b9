package parameter

import "time"

// Frame Timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single step (seconds) so a stalled frame does not teleport signals
	MaxFrameDelta = 0.05

	// ReferenceFPS is the frame rate per-frame decay factors are tuned against
	ReferenceFPS = 60.0
)

// Host Input Queue
const (
	// EventQueueSize is the fixed capacity of the host event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Node Motion
const (
	// NodeRadiusMin/Max bound the random visual node radius (px)
	NodeRadiusMin = 1.8
	NodeRadiusMax = 3.4

	// OscillationAmplitude is the primary drift amplitude around the base position (px)
	OscillationAmplitude = 3.0

	// OscillationSecondary is the amplitude of the faster second harmonic (px)
	OscillationSecondary = 1.2

	// OscillationSpeed is the primary angular speed (rad/sec)
	OscillationSpeed = 0.6

	// RepulsionRadius is the pointer distance under which nodes are pushed away (px)
	RepulsionRadius = 120.0

	// RepulsionStrength is the displacement at zero distance (px), falls linearly to 0 at the radius
	RepulsionStrength = 22.0
)

// Activation
const (
	// ActivationDecay is the per-frame retention at ReferenceFPS
	ActivationDecay = 0.98

	// ActivationEpsilon is the level below which activation snaps to zero
	ActivationEpsilon = 0.002

	// ArrivalBoost is added to the arrival node's activation
	ArrivalBoost = 0.8
)

// Signals
const (
	// SignalSpeedMin/Max bound a fresh signal's speed (edge lengths per second)
	SignalSpeedMin = 0.15
	SignalSpeedMax = 0.25

	// GenerationSpeedup is the per-generation speed multiplier increment
	GenerationSpeedup = 0.07

	// MaxGeneration is the chain reaction ceiling
	MaxGeneration = 14

	// MaxSignals is the global live signal cap, oldest dropped first
	MaxSignals = 2000

	// LayeredEdgeSignalCap is the per-edge live signal cap for the layered layout
	LayeredEdgeSignalCap = 1

	// GridEdgeSignalCap is the per-edge live signal cap for the grid layout
	GridEdgeSignalCap = 2
)

// Fire Cadence
const (
	// FireIntervalMin/Max bound the randomized automatic fire interval (seconds)
	FireIntervalMin = 3.0
	FireIntervalMax = 5.0

	// InitialFireDelay is the delay before the first automatic fire (seconds)
	InitialFireDelay = 0.8

	// HoverRadius is the pointer distance to a node's base position that counts as hovering (px)
	HoverRadius = 18.0

	// HoverDwell is the continuous hover time before a pointer fire (seconds)
	HoverDwell = 0.3

	// HoverCooldown is the minimum time between pointer fires (seconds)
	HoverCooldown = 0.8
)

// Ripples & Afterglow
const (
	// RippleMaxAge is the ripple lifetime (seconds)
	RippleMaxAge = 1.1

	// RippleRadius is the base ripple radius (px), grows slightly with generation
	RippleRadius = 26.0

	// MaxRipples bounds the decorative ripple list
	MaxRipples = 256

	// AfterglowDecay is the afterglow drop per second
	AfterglowDecay = 1.4
)

// Layered Layout
const (
	// LayerSpacing is the target horizontal distance between layers (px)
	LayerSpacing = 150.0

	// LayerNodeSpacing is the target vertical distance between nodes in a layer (px)
	LayerNodeSpacing = 95.0

	// LayerCountMin/Max bound the automatic layer count
	LayerCountMin = 2
	LayerCountMax = 10

	// LayerNodesMin/Max bound the automatic nodes-per-layer count
	LayerNodesMin = 3
	LayerNodesMax = 9

	// LayerEdgeProbability is the inclusion chance of each layer i→i+1 edge
	LayerEdgeProbability = 0.55

	// LayerSkipProbability is the inclusion chance of each layer i→i+2 edge
	LayerSkipProbability = 0.08

	// LayoutPadding is the canvas margin kept free of nodes (px)
	LayoutPadding = 48.0

	// LayoutJitter is the jitter amplitude as a fraction of the cell size
	LayoutJitter = 0.28
)

// Grid Layout
const (
	// GridCellWidth/Height are target cell sizes (px)
	GridCellWidth  = 110.0
	GridCellHeight = 95.0

	// GridMinConnections/MaxConnections bound per-node link targets
	GridMinConnections = 2
	GridMaxConnections = 5

	// GridLinkDistance is the neighbour search radius in cell diagonals
	GridLinkDistance = 1.8

	// ReservedZoneWidth/Height are the central text zone size as a fraction of the canvas
	ReservedZoneWidth  = 0.5
	ReservedZoneHeight = 0.36

	// ReservedZoneMargin is how far inside the zone a node must be to be excluded (px)
	ReservedZoneMargin = 36.0
)

// Rendering
const (
	// EdgeFadeMargin is the vignette width along canvas borders (px)
	EdgeFadeMargin = 90.0

	// SignalTrailSteps is the number of trail samples behind a signal
	SignalTrailSteps = 6

	// SignalTrailSpacing is the progress gap between trail samples
	SignalTrailSpacing = 0.018

	// SignalGlowRadius is the outer bloom radius of a signal (px)
	SignalGlowRadius = 9.0

	// NodeGlowThreshold is the activation above which nodes get an outer glow
	NodeGlowThreshold = 0.25

	// PointerGlowRadius is the soft glow radius around the pointer (px)
	PointerGlowRadius = 140.0

	// HueStep is the hue shift per signal generation (degrees)
	HueStep = 9.0

	// SpriteCacheSize bounds cached glow sprites
	SpriteCacheSize = 64
)
