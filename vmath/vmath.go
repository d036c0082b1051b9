package vmath

import "math"

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates a→b, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep is the cubic Hermite step between edge0 and edge1
func SmoothStep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Gaussian returns exp(-(x/width)^2), 1 at x=0
func Gaussian(x, width float64) float64 {
	if width <= 0 {
		if x == 0 {
			return 1
		}
		return 0
	}
	r := x / width
	return math.Exp(-r * r)
}

// DecayPerFrame converts a per-frame retention factor at the reference rate into
// the factor for an arbitrary dt (seconds)
func DecayPerFrame(factor, refFPS, dt float64) float64 {
	if dt <= 0 {
		return 1
	}
	return math.Pow(factor, dt*refFPS)
}
