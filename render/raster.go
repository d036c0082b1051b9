package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle
const kappa = 0.5522847498

// maxStrokeSpan caps the length of one rasterized stroke piece, keeping each
// coverage mask close to the stroke instead of its full bounding box
const maxStrokeSpan = 48.0

// coverage holds the scratch rasterizer and mask shared by shape fills
type coverage struct {
	z    vector.Rasterizer
	mask *image.Alpha
}

// pen issues path commands in canvas coordinates to a rasterizer whose
// origin sits at (ox, oy)
type pen struct {
	z      *vector.Rasterizer
	ox, oy float64
}

func (p pen) moveTo(x, y float64) {
	p.z.MoveTo(float32(x-p.ox), float32(y-p.oy))
}

func (p pen) lineTo(x, y float64) {
	p.z.LineTo(float32(x-p.ox), float32(y-p.oy))
}

func (p pen) cubeTo(bx, by, cx, cy, dx, dy float64) {
	p.z.CubeTo(
		float32(bx-p.ox), float32(by-p.oy),
		float32(cx-p.ox), float32(cy-p.oy),
		float32(dx-p.ox), float32(dy-p.oy))
}

// circle adds a closed circular subpath; reverse winding cuts a hole
func (p pen) circle(cx, cy, r float64, reverse bool) {
	k := r * kappa
	p.moveTo(cx+r, cy)
	if !reverse {
		p.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		p.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		p.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		p.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		p.cubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		p.cubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		p.cubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		p.cubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	p.z.ClosePath()
}

// quad adds a closed four-point subpath
func (p pen) quad(ax, ay, bx, by, cx, cy, dx, dy float64) {
	p.moveTo(ax, ay)
	p.lineTo(bx, by)
	p.lineTo(cx, cy)
	p.lineTo(dx, dy)
	p.z.ClosePath()
}

// fill rasterizes the path traced over box into the coverage mask and reports
// every covered pixel inside the canvas with coverage in (0,1]
// The whole box is rasterized so the path never leaves the rasterizer bounds;
// clipping to the canvas happens on readback.
func (c *Canvas) fill(box image.Rectangle, trace func(p pen), plot func(x, y int, cov float64)) {
	vis := box.Intersect(image.Rect(0, 0, c.width, c.height))
	if vis.Empty() {
		return
	}
	w, h := box.Dx(), box.Dy()
	r := &c.cover
	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	trace(pen{z: &r.z, ox: float64(box.Min.X), oy: float64(box.Min.Y)})

	if r.mask == nil || cap(r.mask.Pix) < w*h {
		r.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	} else {
		r.mask.Pix = r.mask.Pix[:w*h]
		r.mask.Stride = w
		r.mask.Rect = image.Rect(0, 0, w, h)
	}
	r.z.Draw(r.mask, r.mask.Rect, image.Opaque, image.Point{})

	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		row := r.mask.Pix[(y-box.Min.Y)*w : (y-box.Min.Y+1)*w]
		for x := vis.Min.X; x < vis.Max.X; x++ {
			if a := row[x-box.Min.X]; a > 0 {
				plot(x, y, float64(a)/255)
			}
		}
	}
}

// boundsOf returns the pixel box enclosing [minX,maxX]x[minY,maxY] with a
// one pixel margin for anti-aliasing
func boundsOf(minX, minY, maxX, maxY float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clipSegment returns the parameter range of a→b inside the rectangle
// (Liang-Barsky), ok is false when the segment misses it
func clipSegment(ax, ay, bx, by, minX, minY, maxX, maxY float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := bx-ax, by-ay
	edges := [4][2]float64{
		{-dx, ax - minX},
		{dx, maxX - ax},
		{-dy, ay - minY},
		{dy, maxY - ay},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return t0, t1, true
}
