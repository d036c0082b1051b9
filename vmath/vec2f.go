package vmath

import (
	"math"
)

// Vec2F is a float64 2D vector in canvas pixel space
type Vec2F struct {
	X, Y float64
}

func V2FAdd(a, b Vec2F) Vec2F {
	return Vec2F{a.X + b.X, a.Y + b.Y}
}

func V2FSub(a, b Vec2F) Vec2F {
	return Vec2F{a.X - b.X, a.Y - b.Y}
}

func V2FScale(v Vec2F, s float64) Vec2F {
	return Vec2F{v.X * s, v.Y * s}
}

func V2FMagSq(v Vec2F) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2FMag(v Vec2F) float64 {
	return math.Sqrt(V2FMagSq(v))
}

// V2FDistSq avoids the sqrt for radius checks
func V2FDistSq(a, b Vec2F) float64 {
	return V2FMagSq(V2FSub(a, b))
}

func V2FDist(a, b Vec2F) float64 {
	return math.Sqrt(V2FDistSq(a, b))
}

func V2FNormalize(v Vec2F) Vec2F {
	mag := V2FMag(v)
	if mag == 0 {
		return Vec2F{}
	}
	inv := 1.0 / mag
	return Vec2F{v.X * inv, v.Y * inv}
}

// V2FLerp interpolates a→b
func V2FLerp(a, b Vec2F, t float64) Vec2F {
	return Vec2F{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
