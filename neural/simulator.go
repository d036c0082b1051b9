package neural

import (
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/parameter/visual"
	"github.com/snappingturtle/synapse/render"
	"github.com/snappingturtle/synapse/vmath"
)

// Simulator owns the topology and all transient simulation state
type Simulator struct {
	params Params
	layout Layout
	rng    Rand
	log    *slog.Logger
	onFire func(FireEvent)

	width, height float64

	nodes     []Node
	edges     []Connection
	adjacency [][]int // Node index → incident edge indices, built once per topology
	edgeLoad  []int   // Live signals per edge
	afterglow []float64
	signals   []Signal // Creation order, oldest first
	spawned   []Signal // Scratch for chain reaction spawns during advance
	ripples   []Ripple
	edgeCap   int

	inbox []Event

	pointer       vmath.Vec2F
	pointerActive bool
	visible       bool
	resumed       bool

	time      float64
	fireTimer float64
	hoverNode int
	hoverTime float64
	cooldown  float64

	palette []render.RGB
	stats   Stats
}

// Option configures a Simulator
type Option func(*Simulator)

// WithRand injects the randomness source
func WithRand(r Rand) Option {
	return func(s *Simulator) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithLayout selects the topology builder
func WithLayout(l Layout) Option {
	return func(s *Simulator) {
		if l != nil {
			s.layout = l
		}
	}
}

// WithLogger attaches a structured logger, default discards
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFireHook registers a callback invoked synchronously on every fire
func WithFireHook(fn func(FireEvent)) Option {
	return func(s *Simulator) {
		s.onFire = fn
	}
}

// New creates a visible simulator with an empty topology, call Resize to build
func New(p Params, opts ...Option) *Simulator {
	s := &Simulator{
		params:    p.normalize(),
		layout:    DefaultLayeredLayout(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		visible:   true,
		hoverNode: -1,
		pointer:   vmath.Vec2F{X: NoPointer, Y: NoPointer},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newDefaultRand()
	}
	s.edgeCap = s.params.EdgeSignalCap
	if s.edgeCap <= 0 {
		s.edgeCap = max(s.layout.EdgeSignalCap(), 1)
	}
	s.fireTimer = s.params.InitialFireDelay
	s.palette = render.HuePalette(visual.SignalBaseHue, parameter.HueStep,
		visual.SignalSaturation, visual.SignalValue, s.params.MaxGeneration)
	return s
}

// Resize rebuilds the topology for a new viewport, discarding all signals,
// ripples and afterglow
func (s *Simulator) Resize(width, height float64) {
	s.width, s.height = viewportSide(width), viewportSide(height)

	topo, bad := sanitize(s.layout.Build(s.width, s.height, s.rng))
	if bad > 0 {
		s.log.Warn("layout produced invalid edges", "layout", s.layout.Name(), "dropped", bad)
	}
	s.nodes = topo.Nodes
	s.edges = topo.Edges

	s.adjacency = make([][]int, len(s.nodes))
	for i, e := range s.edges {
		s.adjacency[e.From] = append(s.adjacency[e.From], i)
		s.adjacency[e.To] = append(s.adjacency[e.To], i)
	}
	s.edgeLoad = make([]int, len(s.edges))
	s.afterglow = make([]float64, len(s.edges))
	s.signals = s.signals[:0]
	s.spawned = s.spawned[:0]
	s.ripples = s.ripples[:0]

	s.hoverNode, s.hoverTime = -1, 0
	s.fireTimer = s.params.InitialFireDelay
	s.stats.Rebuilds++

	s.log.Debug("topology rebuilt",
		"layout", s.layout.Name(),
		"width", s.width, "height", s.height,
		"nodes", len(s.nodes), "edges", len(s.edges))
}

// viewportSide maps non-finite and negative sizes to 0
func viewportSide(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Configure swaps parameters and, when l is non-nil, the layout
// A new layout rebuilds the topology at the current size. Live signals keep
// their speeds; those above a lowered generation ceiling are dropped and the
// global cap is reapplied at once.
func (s *Simulator) Configure(p Params, l Layout) {
	s.params = p.normalize()
	if l != nil {
		s.layout = l
	}
	s.edgeCap = s.params.EdgeSignalCap
	if s.edgeCap <= 0 {
		s.edgeCap = max(s.layout.EdgeSignalCap(), 1)
	}
	s.palette = render.HuePalette(visual.SignalBaseHue, parameter.HueStep,
		visual.SignalSaturation, visual.SignalValue, s.params.MaxGeneration)
	s.fireTimer = min(s.fireTimer, s.params.FireIntervalMax)

	if l != nil {
		s.Resize(s.width, s.height)
	}
	s.dropAboveCeiling()
	s.trimSignals()
	s.log.Debug("simulator reconfigured", "layout", s.layout.Name(), "max_signals", s.params.MaxSignals)
}

// dropAboveCeiling removes live signals a lowered MaxGeneration no longer admits
func (s *Simulator) dropAboveCeiling() {
	kept := s.signals[:0]
	for _, sig := range s.signals {
		if sig.Generation <= s.params.MaxGeneration {
			kept = append(kept, sig)
			continue
		}
		if sig.Edge >= 0 && sig.Edge < len(s.edgeLoad) {
			s.edgeLoad[sig.Edge]--
		}
		s.stats.Dropped++
	}
	clear(s.signals[len(kept):])
	s.signals = kept
}

// Post queues an external event for the next Step
func (s *Simulator) Post(ev Event) {
	s.inbox = append(s.inbox, ev)
}

// drainInbox applies pending events in arrival order
func (s *Simulator) drainInbox() {
	for _, ev := range s.inbox {
		switch ev.Kind {
		case EventResize:
			s.Resize(ev.Width, ev.Height)
		case EventPointerMove:
			s.setPointer(ev.X, ev.Y)
		case EventPointerLeave:
			s.setPointer(NoPointer, NoPointer)
		case EventVisibility:
			if ev.Visible && !s.visible {
				s.resumed = true
			}
			s.visible = ev.Visible
		case EventBurst:
			s.Burst()
		case EventFire:
			s.fireThought(SourceManual)
		}
	}
	clear(s.inbox)
	s.inbox = s.inbox[:0]
}

func (s *Simulator) setPointer(x, y float64) {
	s.pointer = vmath.Vec2F{X: x, Y: y}
	s.pointerActive = !(x == NoPointer && y == NoPointer)
	if !s.pointerActive {
		s.hoverNode, s.hoverTime = -1, 0
	}
}

// ===== ACCESSORS =====

// Params returns the normalized parameters in use
func (s *Simulator) Params() Params { return s.params }

// Layout returns the topology builder
func (s *Simulator) Layout() Layout { return s.layout }

// Size returns the current viewport size
func (s *Simulator) Size() (float64, float64) { return s.width, s.height }

// Nodes returns a copy of the node list
func (s *Simulator) Nodes() []Node { return slices.Clone(s.nodes) }

// Edges returns a copy of the edge list
func (s *Simulator) Edges() []Connection { return slices.Clone(s.edges) }

// Signals returns a copy of the live signals, oldest first
func (s *Simulator) Signals() []Signal { return slices.Clone(s.signals) }

// Ripples returns a copy of the live ripples
func (s *Simulator) Ripples() []Ripple { return slices.Clone(s.ripples) }

// Afterglow returns a copy of the per-edge afterglow levels
func (s *Simulator) Afterglow() []float64 { return slices.Clone(s.afterglow) }

// SignalCount returns the number of live signals
func (s *Simulator) SignalCount() int { return len(s.signals) }

// EdgeSignalCap returns the per-edge live signal cap in effect
func (s *Simulator) EdgeSignalCap() int { return s.edgeCap }

// Visible reports whether the simulation is running
func (s *Simulator) Visible() bool { return s.visible }

// Pointer returns the pointer position and whether it is present
func (s *Simulator) Pointer() (x, y float64, ok bool) {
	return s.pointer.X, s.pointer.Y, s.pointerActive
}

// Time returns accumulated simulated seconds
func (s *Simulator) Time() float64 { return s.time }

// Stats returns cumulative counters
func (s *Simulator) Stats() Stats { return s.stats }
