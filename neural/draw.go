package neural

import (
	"math"

	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/parameter/visual"
	"github.com/snappingturtle/synapse/render"
	"github.com/snappingturtle/synapse/vmath"
)

// Surface is the raster target of Render, implemented by *render.Canvas
type Surface interface {
	Size() (int, int)
	Clear(bg render.RGB)
	Line(x0, y0, x1, y1 float64, col render.RGB, mode render.BlendMode, alpha float64)
	GradientLine(x0, y0, x1, y1 float64, col render.RGB, mode render.BlendMode, alphaAt func(t float64) float64)
	Disc(cx, cy, r float64, col render.RGB, mode render.BlendMode, alpha float64)
	Ring(cx, cy, r, width float64, col render.RGB, mode render.BlendMode, alpha float64)
	Glow(cx, cy, r float64, col render.RGB, mode render.BlendMode, alpha float64)
}

// Render paints the current state, a nil surface is a no-op
// Layer order: background, pointer glow, edges, highlights, ripples, signals, nodes
func (s *Simulator) Render(dst Surface) {
	if dst == nil {
		return
	}
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return
	}
	dst.Clear(visual.RgbBackground)

	if s.params.PointerGlow && s.pointerActive {
		dst.Glow(s.pointer.X, s.pointer.Y, parameter.PointerGlowRadius,
			visual.RgbPointerGlow, render.BlendScreen, visual.PointerGlowAlpha)
	}

	s.drawEdges(dst, w, h)
	s.drawHighlights(dst, w, h)
	s.drawRipples(dst)
	s.drawSignals(dst, w, h)
	s.drawNodes(dst, w, h)
}

// fade attenuates brightness near the canvas border
func (s *Simulator) fade(x, y float64, w, h int) float64 {
	if !s.params.EdgeFade || s.params.EdgeFadeMargin <= 0 {
		return 1
	}
	d := min(x, y, float64(w)-x, float64(h)-y)
	return 0.25 + 0.75*vmath.SmoothStep(0, s.params.EdgeFadeMargin, d)
}

// generationColor returns the hue for a generation, clamped to the palette
func (s *Simulator) generationColor(gen int) render.RGB {
	if len(s.palette) == 0 {
		return visual.RgbSignalCore
	}
	return s.palette[min(max(gen-1, 0), len(s.palette)-1)]
}

// endpoints returns the drawn endpoint positions of an edge, false if stale
func (s *Simulator) endpoints(e int) (a, b *Node, ok bool) {
	if e < 0 || e >= len(s.edges) {
		return nil, nil, false
	}
	c := s.edges[e]
	return &s.nodes[c.From], &s.nodes[c.To], true
}

func (s *Simulator) drawEdges(dst Surface, w, h int) {
	for i := range s.edges {
		a, b, _ := s.endpoints(i)
		act := (a.Activation + b.Activation) / 2
		glow := s.afterglow[i]
		alpha := visual.EdgeBaseAlpha + visual.EdgeActiveAlpha*act + visual.EdgeAfterglowAlpha*glow
		alpha *= s.fade((a.X+b.X)/2, (a.Y+b.Y)/2, w, h)
		col := render.Lerp(visual.RgbEdge, visual.RgbEdgeActive, vmath.Clamp01(act+glow))
		dst.Line(a.X, a.Y, b.X, b.Y, col, render.BlendScreen, vmath.Clamp01(alpha))
	}
}

// drawHighlights overlays a comet-shaped stroke peaking at each signal
func (s *Simulator) drawHighlights(dst Surface, w, h int) {
	for _, sig := range s.signals {
		a, b, ok := s.endpoints(sig.Edge)
		if !ok {
			continue
		}
		p := sig.Progress
		dir := 1.0
		if !sig.Forward() {
			dir = -1
		}
		f := s.fade((a.X+b.X)/2, (a.Y+b.Y)/2, w, h)
		width := visual.EdgeHighlightWidth
		dst.GradientLine(a.X, a.Y, b.X, b.Y, s.generationColor(sig.Generation), render.BlendAdd,
			func(t float64) float64 {
				d := (t - p) * dir
				if d > 0 {
					// Sharp leading edge, long tail behind
					return visual.EdgeHighlightAlpha * vmath.Gaussian(d, width*0.35) * f
				}
				return visual.EdgeHighlightAlpha * vmath.Gaussian(d, width) * f
			})
	}
}

func (s *Simulator) drawRipples(dst Surface) {
	for _, r := range s.ripples {
		life := r.Life()
		if life <= 0 {
			continue
		}
		grow := 1 - life*life // ease out
		col := render.Lerp(visual.RgbRipple, s.generationColor(r.Hue+1), 0.5)
		dst.Ring(r.X, r.Y, r.MaxRadius*grow, 1.5, col, render.BlendScreen, visual.RippleAlpha*life)
	}
}

// drawSignals draws trail, bloom and core for every signal
func (s *Simulator) drawSignals(dst Surface, w, h int) {
	steps := parameter.SignalTrailSteps
	for _, sig := range s.signals {
		a, b, ok := s.endpoints(sig.Edge)
		if !ok {
			continue
		}
		dir := 1.0
		if !sig.Forward() {
			dir = -1
		}
		col := s.generationColor(sig.Generation)
		x, y := vmath.Lerp(a.X, b.X, sig.Progress), vmath.Lerp(a.Y, b.Y, sig.Progress)
		f := s.fade(x, y, w, h)

		for k := 1; k <= steps; k++ {
			tp := sig.Progress - dir*float64(k)*parameter.SignalTrailSpacing
			if tp < 0 || tp > 1 {
				break
			}
			life := 1 - float64(k)/float64(steps+1)
			dst.Disc(vmath.Lerp(a.X, b.X, tp), vmath.Lerp(a.Y, b.Y, tp),
				1.6*life, col, render.BlendAdd, 0.5*life*f)
		}

		dst.Glow(x, y, parameter.SignalGlowRadius, col, render.BlendAdd, 0.55*f)
		dst.Disc(x, y, 1.6, visual.RgbSignalCore, render.BlendScreen, 0.95)
	}
}

// drawNodes draws each node with an ambient pulse and activation glow
func (s *Simulator) drawNodes(dst Surface, w, h int) {
	for _, n := range s.nodes {
		f := s.fade(n.X, n.Y, w, h)
		act := n.Activation
		pulse := 0.5 + 0.5*math.Sin(s.time*0.9+n.Phase)
		base := visual.NodeBaseBrightness + visual.NodePulseBrightness*pulse
		bright := base + (1-base)*act
		col := render.Lerp(visual.RgbNode, visual.RgbNodeHot, act)
		r := n.Radius * (1 + 0.6*act)

		if act > parameter.NodeGlowThreshold {
			dst.Glow(n.X, n.Y, r*5, col, render.BlendAdd, 0.35*act*f)
		}
		dst.Disc(n.X, n.Y, r, col, render.BlendAlpha, vmath.Clamp01(bright*f))
	}
}
