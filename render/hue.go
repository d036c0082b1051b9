package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV converts hue (degrees, wrapped), saturation and value to RGB
func HSV(hue, sat, val float64) RGB {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, sat, val).Clamped().RGB255()
	return RGB{r, g, b}
}

// HuePalette precomputes count colors stepping hue by step degrees from base
// Index 0 is base, used for per-generation signal tinting
func HuePalette(base, step, sat, val float64, count int) []RGB {
	if count <= 0 {
		return nil
	}
	out := make([]RGB, count)
	for i := range out {
		out[i] = HSV(base+step*float64(i), sat, val)
	}
	return out
}
