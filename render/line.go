package render

import (
	"math"
)

// Line draws a 1px anti-aliased segment
func (c *Canvas) Line(x0, y0, x1, y1 float64, col RGB, mode BlendMode, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.stroke(x0, y0, x1, y1, func(x, y int, cov, _ float64) {
		c.Plot(x, y, col, mode, alpha*cov)
	})
}

// GradientLine draws a segment whose opacity is sampled along its length
// alphaAt receives t in [0,1], 0 at (x0,y0)
func (c *Canvas) GradientLine(x0, y0, x1, y1 float64, col RGB, mode BlendMode, alphaAt func(t float64) float64) {
	if alphaAt == nil {
		return
	}
	c.stroke(x0, y0, x1, y1, func(x, y int, cov, t float64) {
		a := alphaAt(t)
		if a <= 0 {
			return
		}
		c.Plot(x, y, col, mode, a*cov)
	})
}

// stroke rasterizes a 1px wide segment with butt caps and reports each
// covered pixel with its coverage and the projection t of its center onto the
// segment. Long segments are clipped to the canvas and split into pieces.
func (c *Canvas) stroke(x0, y0, x1, y1 float64, plot func(x, y int, cov, t float64)) {
	if !finite(x0, y0, x1, y1) {
		return
	}
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	project := func(x, y int) float64 {
		if lenSq == 0 {
			return 0
		}
		t := ((float64(x)+0.5-x0)*dx + (float64(y)+0.5-y0)*dy) / lenSq
		return math.Min(math.Max(t, 0), 1)
	}
	emit := func(x, y int, cov float64) {
		plot(x, y, cov, project(x, y))
	}

	if lenSq < 1e-12 {
		// Degenerate: unit square at the point
		box := boundsOf(x0-0.5, y0-0.5, x0+0.5, y0+0.5)
		c.fill(box, func(p pen) {
			p.quad(x0-0.5, y0-0.5, x0+0.5, y0-0.5, x0+0.5, y0+0.5, x0-0.5, y0+0.5)
		}, emit)
		return
	}

	const margin = 2
	t0, t1, ok := clipSegment(x0, y0, x1, y1,
		-margin, -margin, float64(c.width)+margin, float64(c.height)+margin)
	if !ok || t1 <= t0 {
		return
	}

	length := math.Sqrt(lenSq)
	nx, ny := -dy/length*0.5, dx/length*0.5
	pieces := max(int(math.Ceil((t1-t0)*length/maxStrokeSpan)), 1)
	step := (t1 - t0) / float64(pieces)

	for i := 0; i < pieces; i++ {
		ta, tb := t0+float64(i)*step, t0+float64(i+1)*step
		ax, ay := x0+dx*ta, y0+dy*ta
		bx, by := x0+dx*tb, y0+dy*tb
		box := boundsOf(
			min(ax, bx)-0.5, min(ay, by)-0.5,
			max(ax, bx)+0.5, max(ay, by)+0.5)
		c.fill(box, func(p pen) {
			p.quad(ax+nx, ay+ny, bx+nx, by+ny, bx-nx, by-ny, ax-nx, ay-ny)
		}, emit)
	}
}
