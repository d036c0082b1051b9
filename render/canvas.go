package render

import (
	"image"
	"math"
)

// Canvas is an opaque RGB raster compositor backed by image.RGBA
// Writes outside the bounds are dropped, alpha channel is kept at 255
type Canvas struct {
	img     *image.RGBA
	width   int
	height  int
	sprites *Sprites
	cover   coverage
}

// NewCanvas creates a canvas with the specified dimensions
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{sprites: NewSprites(0)}
	c.Resize(width, height)
	return c
}

// Resize adjusts canvas dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height * 4
	if c.img != nil && cap(c.img.Pix) >= size {
		c.img.Pix = c.img.Pix[:size]
		c.img.Stride = width * 4
		c.img.Rect = image.Rect(0, 0, width, height)
	} else {
		c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	c.width = width
	c.height = height
	c.Clear(RGBBlack)
}

// Size returns canvas dimensions in pixels, zero for a nil canvas
func (c *Canvas) Size() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.width, c.height
}

// Image exposes the backing raster for presenters and encoders
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the canvas using exponential copy
func (c *Canvas) Clear(bg RGB) {
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, 255
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// inBounds returns true if in canvas bounds
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// At returns the pixel color, black outside the bounds
func (c *Canvas) At(x, y int) RGB {
	if !c.inBounds(x, y) {
		return RGBBlack
	}
	i := y*c.img.Stride + x*4
	p := c.img.Pix[i : i+3 : i+3]
	return RGB{p[0], p[1], p[2]}
}

// ===== COMPOSITOR API =====

// Plot composites a single pixel with the specified blend mode
func (c *Canvas) Plot(x, y int, col RGB, mode BlendMode, alpha float64) {
	if !c.inBounds(x, y) || alpha <= 0 {
		return
	}
	i := y*c.img.Stride + x*4
	p := c.img.Pix[i : i+3 : i+3]
	out := mode.Apply(RGB{p[0], p[1], p[2]}, col, alpha)
	p[0], p[1], p[2] = out.R, out.G, out.B
}

// Disc draws an anti-aliased filled circle
func (c *Canvas) Disc(cx, cy, r float64, col RGB, mode BlendMode, alpha float64) {
	if r <= 0 || alpha <= 0 || !finite(cx, cy, r) {
		return
	}
	box := boundsOf(cx-r, cy-r, cx+r, cy+r)
	c.fill(box, func(p pen) {
		p.circle(cx, cy, r, false)
	}, func(x, y int, cov float64) {
		c.Plot(x, y, col, mode, alpha*cov)
	})
}

// Ring draws an anti-aliased circle outline of the given stroke width
// The inner circle is wound in reverse so the rasterizer leaves it hollow.
func (c *Canvas) Ring(cx, cy, r, width float64, col RGB, mode BlendMode, alpha float64) {
	if r <= 0 || alpha <= 0 || width <= 0 || !finite(cx, cy, r, width) {
		return
	}
	outer, inner := r+width/2, r-width/2
	box := boundsOf(cx-outer, cy-outer, cx+outer, cy+outer)
	c.fill(box, func(p pen) {
		p.circle(cx, cy, outer, false)
		if inner > 0 {
			p.circle(cx, cy, inner, true)
		}
	}, func(x, y int, cov float64) {
		c.Plot(x, y, col, mode, alpha*cov)
	})
}

// Glow stamps a soft radial falloff centered at (cx, cy)
func (c *Canvas) Glow(cx, cy, r float64, col RGB, mode BlendMode, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	s := c.sprites.Get(r)
	ox := int(math.Round(cx)) - s.Radius
	oy := int(math.Round(cy)) - s.Radius
	// Reject sprites fully outside the canvas before walking the mask
	if ox+s.Size <= 0 || oy+s.Size <= 0 || ox >= c.width || oy >= c.height {
		return
	}
	for sy := 0; sy < s.Size; sy++ {
		y := oy + sy
		if y < 0 || y >= c.height {
			continue
		}
		row := s.Mask[sy*s.Size : (sy+1)*s.Size]
		for sx, m := range row {
			if m <= 0 {
				continue
			}
			c.Plot(ox+sx, y, col, mode, alpha*m)
		}
	}
}
