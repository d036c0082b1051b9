package visual

import (
	"github.com/snappingturtle/synapse/render"
)

// Site theme (turtle scale)
var (
	// RgbBackground is the hero section background (turtle-950)
	RgbBackground = render.RGB{6, 42, 20}

	// RgbEdge is the idle edge stroke (turtle-600)
	RgbEdge = render.RGB{30, 110, 66}

	// RgbEdgeActive is the edge stroke at full endpoint activation (turtle-400)
	RgbEdgeActive = render.RGB{75, 168, 111}

	// RgbNode is the resting node fill (turtle-500)
	RgbNode = render.RGB{46, 139, 87}

	// RgbNodeHot is the node fill at full activation (turtle-100)
	RgbNodeHot = render.RGB{213, 238, 220}

	// RgbSignalCore is the bright signal center
	RgbSignalCore = render.RGB{236, 255, 244}

	// RgbPointerGlow is the soft light following the pointer (emerald-500)
	RgbPointerGlow = render.RGB{16, 185, 129}

	// RgbRipple is the ripple ring base color (turtle-300)
	RgbRipple = render.RGB{123, 196, 150}
)

// Generation hue ramp (HSV)
const (
	// SignalBaseHue is the generation 1 hue (degrees), emerald
	SignalBaseHue = 150.0

	// SignalSaturation/Value are the HSV saturation and value of signal colors
	SignalSaturation = 0.55
	SignalValue      = 1.0
)

// Opacities
const (
	// EdgeBaseAlpha is the idle edge opacity
	EdgeBaseAlpha = 0.14

	// EdgeActiveAlpha is the additional opacity at full endpoint activation
	EdgeActiveAlpha = 0.45

	// EdgeAfterglowAlpha is the additional opacity at full afterglow
	EdgeAfterglowAlpha = 0.35

	// EdgeHighlightAlpha is the peak opacity of the signal highlight stroke
	EdgeHighlightAlpha = 0.85

	// EdgeHighlightWidth is the highlight falloff width in edge progress units
	EdgeHighlightWidth = 0.16

	// NodeBaseBrightness is the resting node brightness
	NodeBaseBrightness = 0.45

	// NodePulseBrightness is the ambient pulse contribution
	NodePulseBrightness = 0.2

	// PointerGlowAlpha is the peak pointer glow opacity
	PointerGlowAlpha = 0.10

	// RippleAlpha is the ripple ring opacity at birth
	RippleAlpha = 0.5
)
