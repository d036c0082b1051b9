package neural

import (
	"math"

	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/vmath"
)

// Step advances the simulation by dt seconds
// Pending events are applied first. While hidden nothing else happens, and the
// first step after becoming visible again runs with dt = 0.
func (s *Simulator) Step(dt float64) {
	s.drainInbox()
	if !s.visible {
		return
	}
	if s.resumed {
		dt = 0
		s.resumed = false
	}
	if math.IsNaN(dt) {
		dt = 0
	}
	dt = vmath.Clamp(dt, 0, s.params.MaxFrameDelta)

	s.time += dt
	s.stats.Frames++

	s.updateTriggers(dt)
	s.moveNodes()
	s.decayActivation(dt)
	s.advanceSignals(dt)
	s.trimSignals()
	s.ageDecorations(dt)
}

// ===== TRIGGERS =====

// updateTriggers runs pointer hover dwell and the automatic timer
func (s *Simulator) updateTriggers(dt float64) {
	if s.cooldown > 0 {
		s.cooldown = max(s.cooldown-dt, 0)
	}

	if s.params.PointerFire {
		s.updateHover(dt)
	}

	if s.params.AutoFire && len(s.nodes) > 0 {
		s.fireTimer -= dt
		if s.fireTimer <= 0 {
			s.fireThought(SourceAuto)
			s.fireTimer = uniform(s.rng, s.params.FireIntervalMin, s.params.FireIntervalMax)
		}
	}
}

// updateHover accumulates dwell time on the node nearest the pointer
// Distance is measured to the base position so repulsion cannot push the node away
func (s *Simulator) updateHover(dt float64) {
	node := s.hoveredNode()
	if node < 0 {
		s.hoverNode, s.hoverTime = -1, 0
		return
	}
	if node != s.hoverNode {
		s.hoverNode, s.hoverTime = node, 0
	}
	s.hoverTime += dt

	if s.hoverTime >= s.params.HoverDwell && s.cooldown <= 0 {
		s.fire(node, SourcePointer)
		s.cooldown = s.params.HoverCooldown
		s.hoverTime = 0
	}
}

// hoveredNode returns the closest node within the hover radius, -1 if none
func (s *Simulator) hoveredNode() int {
	if !s.pointerActive {
		return -1
	}
	best := -1
	bestD := s.params.HoverRadius * s.params.HoverRadius
	for i, n := range s.nodes {
		if d := vmath.V2FDistSq(s.pointer, n.basePos()); d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

// ===== MOTION =====

// moveNodes derives drawn positions from base + oscillation + repulsion
func (s *Simulator) moveNodes() {
	p := &s.params
	t := s.time * p.OscillationSpeed
	for i := range s.nodes {
		n := &s.nodes[i]
		ox := math.Sin(t+n.Phase)*p.OscillationAmplitude +
			math.Sin(t*2.3+n.Phase*1.7)*p.OscillationSecondary
		oy := math.Cos(t*0.8+n.Phase*1.3)*p.OscillationAmplitude +
			math.Sin(t*1.9+n.Phase*0.6)*p.OscillationSecondary
		x, y := n.BaseX+ox, n.BaseY+oy

		if s.pointerActive && p.RepulsionRadius > 0 {
			dx, dy := x-s.pointer.X, y-s.pointer.Y
			d := math.Hypot(dx, dy)
			if d > 0 && d < p.RepulsionRadius {
				push := (1 - d/p.RepulsionRadius) * p.RepulsionStrength
				x += dx / d * push
				y += dy / d * push
			}
		}
		n.X, n.Y = x, y
	}
}

// decayActivation applies the frame-rate independent exponential decay
func (s *Simulator) decayActivation(dt float64) {
	f := vmath.DecayPerFrame(s.params.ActivationDecay, parameter.ReferenceFPS, dt)
	for i := range s.nodes {
		a := s.nodes[i].Activation * f
		if a < s.params.ActivationEpsilon {
			a = 0
		}
		s.nodes[i].Activation = vmath.Clamp01(a)
	}
}

// ===== SIGNALS =====

// advanceSignals moves every signal, handles arrivals and chain reactions
// Survivors keep their order, chain spawns are appended after them
func (s *Simulator) advanceSignals(dt float64) {
	s.recountLoad()

	kept := s.signals[:0]
	s.spawned = s.spawned[:0]
	for _, sig := range s.signals {
		if sig.Edge < 0 || sig.Edge >= len(s.edges) {
			s.stats.Stale++
			continue
		}
		sig.Progress += sig.Speed * dt

		var arrival int
		switch {
		case sig.Speed > 0 && sig.Progress >= 1:
			arrival = s.edges[sig.Edge].To
		case sig.Speed < 0 && sig.Progress <= 0:
			arrival = s.edges[sig.Edge].From
		default:
			kept = append(kept, sig)
			continue
		}
		s.edgeLoad[sig.Edge]--
		s.arrive(sig, arrival)
	}
	s.signals = append(kept, s.spawned...)
	clear(s.spawned)
	s.spawned = s.spawned[:0]
}

// recountLoad rebuilds per-edge live counts from the signal list
func (s *Simulator) recountLoad() {
	clear(s.edgeLoad)
	for _, sig := range s.signals {
		if sig.Edge >= 0 && sig.Edge < len(s.edgeLoad) {
			s.edgeLoad[sig.Edge]++
		}
	}
}

// arrive boosts the node, leaves decorations and rebroadcasts
func (s *Simulator) arrive(sig Signal, node int) {
	s.stats.Arrivals++
	n := &s.nodes[node]
	n.Activation = vmath.Clamp01(n.Activation + s.params.ArrivalBoost)
	s.afterglow[sig.Edge] = 1

	if s.params.Ripples && s.params.MaxRipples > 0 {
		if len(s.ripples) >= s.params.MaxRipples {
			s.ripples = append(s.ripples[:0], s.ripples[1:]...)
		}
		s.ripples = append(s.ripples, Ripple{
			X: n.X, Y: n.Y,
			MaxAge:    s.params.RippleMaxAge,
			MaxRadius: s.params.RippleRadius * (1 + 0.04*float64(sig.Generation-1)),
			Hue:       min(sig.Generation-1, len(s.palette)-1),
		})
	}

	next := sig.Generation + 1
	if next > s.params.MaxGeneration {
		return
	}
	for _, e := range s.adjacency[node] {
		if e == sig.Edge || s.edgeLoad[e] >= s.edgeCap {
			continue
		}
		s.spawned = append(s.spawned, s.newSignal(e, node, next))
		s.edgeLoad[e]++
		s.stats.Spawned++
	}
}

// ageDecorations ages ripples and fades afterglow
func (s *Simulator) ageDecorations(dt float64) {
	live := s.ripples[:0]
	for _, r := range s.ripples {
		r.Age += dt
		if r.Age < r.MaxAge {
			live = append(live, r)
		}
	}
	s.ripples = live

	drop := s.params.AfterglowDecay * dt
	for i, g := range s.afterglow {
		if g > 0 {
			s.afterglow[i] = max(g-drop, 0)
		}
	}
}
