package render

// RGB stores explicit 8-bit color channels, alpha lives in the blend call
type RGB struct {
	R, G, B uint8
}

// Predefined default color
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Max returns per-channel maximum with alpha blending
func Max(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	maxed := RGB{
		R: max(c.R, src.R),
		G: max(c.G, src.G),
		B: max(c.B, src.B),
	}

	if alpha >= 1.0 {
		return maxed
	}

	return Blend(c, maxed, alpha)
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add accumulates light: src is scaled by alpha before the clamped sum
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	if alpha < 1.0 {
		src = Scale(src, alpha)
	}

	return RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}
}

// fastDiv255 approximates x / 255 using integer math
// Formula: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src), src scaled by alpha so it never exceeds white
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	if alpha < 1.0 {
		src = Scale(src, alpha)
	}

	return RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	// Clamp to not wrap on factor > 1.0
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Luma returns Rec. 601 brightness in [0, 255]
// Integer math: (R*299 + G*587 + B*114) / 1000
func Luma(c RGB) int {
	return (int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000
}
