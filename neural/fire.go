package neural

// FireThought originates a wave from a randomly chosen quiet node, falling back
// to calm nodes. Returns false without mutating anything if none qualify.
func (s *Simulator) FireThought() bool {
	return s.fireThought(SourceManual)
}

func (s *Simulator) fireThought(src FireSource) bool {
	origin := s.pickOrigin()
	if origin < 0 {
		s.stats.SkippedFires++
		return false
	}
	s.fire(origin, src)
	return true
}

// pickOrigin selects uniformly among quiet nodes, then calm nodes, -1 if none
// Quiet: no incident edge carries a signal
// Calm: fewer than half of the incident edges carry a signal
func (s *Simulator) pickOrigin() int {
	if len(s.nodes) == 0 {
		return -1
	}
	var quiet, calm []int
	for i, adj := range s.adjacency {
		busy := 0
		for _, e := range adj {
			if s.edgeLoad[e] > 0 {
				busy++
			}
		}
		switch {
		case busy == 0:
			quiet = append(quiet, i)
		case busy*2 < len(adj):
			calm = append(calm, i)
		}
	}
	if len(quiet) > 0 {
		return quiet[pick(s.rng, len(quiet))]
	}
	if len(calm) > 0 {
		return calm[pick(s.rng, len(calm))]
	}
	return -1
}

// FireFrom originates a wave from a specific node
// Returns false for an out-of-range index
func (s *Simulator) FireFrom(node int) bool {
	if node < 0 || node >= len(s.nodes) {
		return false
	}
	s.fire(node, SourceManual)
	return true
}

// Burst fires every node of the leftmost layer, returns the number fired
func (s *Simulator) Burst() int {
	if len(s.nodes) == 0 {
		return 0
	}
	first := s.nodes[0].Layer
	for _, n := range s.nodes[1:] {
		first = min(first, n.Layer)
	}
	fired := 0
	for i, n := range s.nodes {
		if n.Layer == first {
			s.fire(i, SourceBurst)
			fired++
		}
	}
	s.stats.Bursts++
	return fired
}

// fire saturates the origin and launches generation 1 on each idle incident edge
func (s *Simulator) fire(origin int, src FireSource) {
	s.nodes[origin].Activation = 1
	spawned := 0
	for _, e := range s.adjacency[origin] {
		if s.edgeLoad[e] > 0 {
			continue
		}
		s.signals = append(s.signals, s.newSignal(e, origin, 1))
		s.edgeLoad[e]++
		spawned++
	}
	s.trimSignals()

	s.stats.Fires++
	s.stats.Spawned += uint64(spawned)
	switch src {
	case SourceAuto:
		s.stats.AutoFires++
	case SourcePointer:
		s.stats.PointerFires++
	}

	if s.onFire != nil {
		s.onFire(FireEvent{Node: origin, Layer: s.nodes[origin].Layer, Source: src, Spawned: spawned})
	}
}

// newSignal creates a signal leaving node along edge e
// Speed grows with generation so later waves overtake earlier ones, and never
// falls below the generation 1 draw
func (s *Simulator) newSignal(e, from, gen int) Signal {
	speed := uniform(s.rng, s.params.SignalSpeedMin, s.params.SignalSpeedMax)
	speed *= max(1+float64(gen-1)*s.params.GenerationSpeedup, 1)
	if s.edges[e].From == from {
		return Signal{Edge: e, Progress: 0, Speed: speed, Generation: gen}
	}
	return Signal{Edge: e, Progress: 1, Speed: -speed, Generation: gen}
}

// trimSignals drops the oldest signals above the global cap
func (s *Simulator) trimSignals() {
	excess := len(s.signals) - s.params.MaxSignals
	if excess <= 0 {
		return
	}
	for _, sig := range s.signals[:excess] {
		if sig.Edge >= 0 && sig.Edge < len(s.edgeLoad) {
			s.edgeLoad[sig.Edge]--
		}
	}
	s.signals = append(s.signals[:0], s.signals[excess:]...)
	s.stats.Dropped += uint64(excess)
	s.log.Debug("signal cap reached", "dropped", excess, "cap", s.params.MaxSignals)
}
