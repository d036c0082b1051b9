package render

import (
	"testing"
)

func TestSpritesQuantizeAndEvict(t *testing.T) {
	s := NewSprites(3)

	a := s.Get(4.0)
	b := s.Get(4.1) // Same half-pixel bucket
	if a != b {
		t.Error("Expected radii in the same bucket to share a sprite")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 cached sprite, got %d", s.Len())
	}

	for _, r := range []float64{1, 2, 3, 5} {
		s.Get(r)
	}
	if s.Len() != 3 {
		t.Errorf("Expected cache bounded at 3, got %d", s.Len())
	}
}

func TestSpriteMask(t *testing.T) {
	sp := NewSprites(0).Get(5)
	if sp.Size != sp.Radius*2+1 {
		t.Errorf("Expected size %d, got %d", sp.Radius*2+1, sp.Size)
	}
	center := sp.Mask[sp.Radius*sp.Size+sp.Radius]
	if center != 1 {
		t.Errorf("Expected center weight 1, got %f", center)
	}
	if corner := sp.Mask[0]; corner != 0 {
		t.Errorf("Expected zero corner weight, got %f", corner)
	}
	for _, m := range sp.Mask {
		if m < 0 || m > 1 {
			t.Fatalf("Mask value out of range: %f", m)
		}
	}
}

func TestHuePalette(t *testing.T) {
	p := HuePalette(150, 9, 0.55, 1, 14)
	if len(p) != 14 {
		t.Fatalf("Expected 14 colors, got %d", len(p))
	}
	if p[0] == p[13] {
		t.Error("Expected hue to shift across generations")
	}
	if HuePalette(0, 10, 1, 1, 0) != nil {
		t.Error("Expected nil palette for zero count")
	}

	// Hue wraps
	if HSV(-30, 1, 1) != HSV(330, 1, 1) {
		t.Error("Expected negative hue to wrap")
	}
	if got := HSV(0, 1, 1); got != (RGB{255, 0, 0}) {
		t.Errorf("Expected pure red, got %+v", got)
	}
}
