package neural

import (
	"math"
	"math/rand"
	"testing"

	"github.com/snappingturtle/synapse/parameter/visual"
	"github.com/snappingturtle/synapse/render"
)

// fixedRand returns a constant fraction and always picks index 0
// Float64 = 0.5 yields a generation 1 speed of exactly 0.2
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return 0 }

// quietParams disables automatic and pointer triggers
func quietParams() Params {
	p := DefaultParams()
	p.AutoFire = false
	p.PointerFire = false
	return p
}

// pathLayout is the 0-1-2-3 path graph along y = 100
func pathLayout() FixedLayout {
	nodes := make([]Node, 4)
	for i := range nodes {
		nodes[i] = Node{BaseX: 100 + float64(i)*100, BaseY: 100, Radius: 2, Layer: i}
	}
	return FixedLayout{
		Nodes: nodes,
		Edges: []Connection{{0, 1}, {1, 2}, {2, 3}},
	}
}

func newPathSim(p Params, opts ...Option) *Simulator {
	opts = append([]Option{WithLayout(pathLayout()), WithRand(fixedRand{0.5})}, opts...)
	s := New(p, opts...)
	s.Resize(500, 200)
	return s
}

// checkInvariants asserts the per-frame bounds on every entity
func checkInvariants(t *testing.T, s *Simulator) {
	t.Helper()
	for i, n := range s.nodes {
		if n.Activation < 0 || n.Activation > 1 {
			t.Fatalf("Node %d activation out of range: %f", i, n.Activation)
		}
	}
	if len(s.signals) > s.params.MaxSignals {
		t.Fatalf("Signal count %d exceeds cap %d", len(s.signals), s.params.MaxSignals)
	}
	load := make(map[int]int)
	for _, sig := range s.signals {
		if sig.Progress < 0 || sig.Progress > 1 {
			t.Fatalf("Signal progress out of range: %+v", sig)
		}
		if sig.Generation < 1 || sig.Generation > s.params.MaxGeneration {
			t.Fatalf("Signal generation out of range: %+v", sig)
		}
		load[sig.Edge]++
	}
	for e, n := range load {
		if n > s.edgeCap {
			t.Fatalf("Edge %d carries %d signals, cap %d", e, n, s.edgeCap)
		}
	}
}

func TestChainReactionPathGraph(t *testing.T) {
	s := newPathSim(quietParams())

	if !s.FireFrom(0) {
		t.Fatal("FireFrom(0) failed")
	}
	sigs := s.Signals()
	if len(sigs) != 1 {
		t.Fatalf("Expected 1 signal after fire, got %d", len(sigs))
	}
	first := sigs[0]
	if first.Edge != 0 || first.Progress != 0 || first.Generation != 1 {
		t.Errorf("Unexpected initial signal: %+v", first)
	}
	if first.Speed < 0.199 || first.Speed > 0.201 {
		t.Errorf("Expected speed 0.2, got %f", first.Speed)
	}

	arrived := false
	for frame := 0; frame < 200; frame++ {
		s.Step(0.05)
		checkInvariants(t, s)
		if s.stats.Arrivals > 0 {
			arrived = true
			break
		}
	}
	if !arrived {
		t.Fatal("Signal never arrived at node 1")
	}

	if s.nodes[1].Activation <= 0 {
		t.Errorf("Expected node 1 activation > 0, got %f", s.nodes[1].Activation)
	}
	sigs = s.Signals()
	if len(sigs) != 1 {
		t.Fatalf("Expected exactly the rebroadcast signal, got %d", len(sigs))
	}
	next := sigs[0]
	if next.Edge != 1 {
		t.Errorf("Expected signal on edge (1,2), got edge %d", next.Edge)
	}
	if next.Generation != 2 {
		t.Errorf("Expected generation 2, got %d", next.Generation)
	}
	if !next.Forward() || next.Progress != 0 {
		t.Errorf("Expected forward signal leaving node 1, got %+v", next)
	}
	if next.Speed <= first.Speed {
		t.Errorf("Expected generation 2 to be faster: %f <= %f", next.Speed, first.Speed)
	}
}

func TestChainReactionReverseDirection(t *testing.T) {
	s := newPathSim(quietParams())
	s.FireFrom(3)

	sig := s.Signals()[0]
	if sig.Edge != 2 || sig.Progress != 1 || sig.Forward() {
		t.Fatalf("Expected reverse signal on edge 2 at progress 1, got %+v", sig)
	}

	for frame := 0; frame < 200 && s.stats.Arrivals == 0; frame++ {
		s.Step(0.05)
		checkInvariants(t, s)
	}
	sigs := s.Signals()
	if len(sigs) != 1 || sigs[0].Edge != 1 || sigs[0].Forward() || sigs[0].Progress != 1 {
		t.Errorf("Expected reverse rebroadcast on edge 1, got %+v", sigs)
	}
}

func TestGenerationCeiling(t *testing.T) {
	p := quietParams()
	p.MaxGeneration = 2
	s := newPathSim(p)
	s.FireFrom(0)

	for frame := 0; frame < 400; frame++ {
		s.Step(0.05)
		checkInvariants(t, s)
	}
	if s.SignalCount() != 0 {
		t.Errorf("Expected the wave to die at the ceiling, %d signals left", s.SignalCount())
	}
	if s.stats.Arrivals != 2 {
		t.Errorf("Expected 2 arrivals (gen 1 and gen 2), got %d", s.stats.Arrivals)
	}
	if s.nodes[3].Activation != 0 {
		t.Errorf("Expected node 3 never reached, activation %f", s.nodes[3].Activation)
	}
}

func TestFireThoughtBusyGraphNoop(t *testing.T) {
	layout := FixedLayout{
		Nodes: []Node{{BaseX: 10, BaseY: 10}, {BaseX: 90, BaseY: 10}},
		Edges: []Connection{{0, 1}},
	}
	s := New(quietParams(), WithLayout(layout), WithRand(fixedRand{0.5}))
	s.Resize(100, 20)
	s.FireFrom(0)

	nodesBefore := s.Nodes()
	signalsBefore := s.Signals()

	if s.FireThought() {
		t.Fatal("Expected FireThought to skip on a busy graph")
	}

	for i, n := range s.Nodes() {
		if n != nodesBefore[i] {
			t.Errorf("Node %d mutated: %+v -> %+v", i, nodesBefore[i], n)
		}
	}
	after := s.Signals()
	if len(after) != len(signalsBefore) {
		t.Fatalf("Signal count changed: %d -> %d", len(signalsBefore), len(after))
	}
	for i := range after {
		if after[i] != signalsBefore[i] {
			t.Errorf("Signal %d mutated", i)
		}
	}
	if s.stats.SkippedFires != 1 {
		t.Errorf("Expected 1 skipped fire, got %d", s.stats.SkippedFires)
	}
}

func TestFireThoughtPrefersQuiet(t *testing.T) {
	s := newPathSim(quietParams())
	// Edge 0 busy: nodes 0 and 1 are not quiet, 2 and 3 are
	s.FireFrom(0)
	s.nodes[0].Activation = 0

	if !s.FireThought() {
		t.Fatal("Expected a quiet node to fire")
	}
	// fixedRand picks the first quiet node
	if s.nodes[2].Activation != 1 {
		t.Errorf("Expected node 2 to fire, activations %v", []float64{
			s.nodes[0].Activation, s.nodes[1].Activation, s.nodes[2].Activation, s.nodes[3].Activation})
	}
}

func TestFireThoughtFallsBackToCalm(t *testing.T) {
	// Hub 0 links leaves 1, 2, 3; leaves 2 and 3 also link node 4
	layout := FixedLayout{
		Nodes: []Node{
			{BaseX: 50, BaseY: 50}, {BaseX: 10, BaseY: 10}, {BaseX: 90, BaseY: 10},
			{BaseX: 50, BaseY: 90}, {BaseX: 90, BaseY: 90},
		},
		Edges: []Connection{{0, 1}, {0, 2}, {0, 3}, {2, 4}, {3, 4}},
	}
	s := New(quietParams(), WithLayout(layout), WithRand(fixedRand{0.5}))
	s.Resize(100, 100)

	load := func(edges ...int) {
		s.signals = s.signals[:0]
		clear(s.edgeLoad)
		for _, e := range edges {
			s.signals = append(s.signals, Signal{Edge: e, Progress: 0.5, Speed: 0.2, Generation: 1})
			s.edgeLoad[e]++
		}
	}

	// Node 1 is the only quiet node
	load(1, 2, 3, 4)
	if origin := s.pickOrigin(); origin != 1 {
		t.Errorf("Expected quiet node 1, got %d", origin)
	}

	// Every node touches a busy edge, hub has 1/3 busy and is calm
	load(0, 3, 4)
	if origin := s.pickOrigin(); origin != 0 {
		t.Errorf("Expected calm hub 0, got %d", origin)
	}
	if !s.FireThought() {
		t.Fatal("Expected calm fallback to fire")
	}
	if s.SignalCount() != 5 {
		t.Errorf("Expected 2 new signals on the hub's idle edges, total %d", s.SignalCount())
	}

	// Everything busy: leaves 1/1 or 2/2, hub 3/3
	load(0, 1, 2, 3, 4)
	if origin := s.pickOrigin(); origin != -1 {
		t.Errorf("Expected no origin, got %d", origin)
	}
}

func TestHoverFireAndCooldown(t *testing.T) {
	p := quietParams()
	p.PointerFire = true

	var fires []FireEvent
	s := newPathSim(p, WithFireHook(func(ev FireEvent) { fires = append(fires, ev) }))

	// Pointer exactly on node 1's base position
	s.Post(PointerMoveEvent(200, 100))

	for frame := 0; frame < 4; frame++ {
		s.Step(0.05)
	}
	if len(fires) != 0 {
		t.Fatalf("Expected no fire before dwell elapsed, got %d", len(fires))
	}

	for frame := 0; frame < 6; frame++ {
		s.Step(0.05)
	}
	if len(fires) != 1 {
		t.Fatalf("Expected exactly 1 pointer fire after 0.5s hover, got %d", len(fires))
	}
	if fires[0].Source != SourcePointer || fires[0].Node != 1 {
		t.Errorf("Unexpected fire event: %+v", fires[0])
	}
	if fires[0].Spawned != 2 {
		t.Errorf("Expected 2 spawned signals from node 1, got %d", fires[0].Spawned)
	}

	// Still hovering through 1.0s total: cooldown holds
	for frame := 0; frame < 10; frame++ {
		s.Step(0.05)
	}
	if len(fires) != 1 {
		t.Errorf("Expected cooldown to suppress re-fire, got %d fires", len(fires))
	}

	// Past the cooldown the dwell qualifies again
	for frame := 0; frame < 10; frame++ {
		s.Step(0.05)
	}
	if len(fires) != 2 {
		t.Errorf("Expected a second fire after cooldown, got %d", len(fires))
	}
	if s.Stats().PointerFires != 2 {
		t.Errorf("Expected 2 pointer fires in stats, got %d", s.Stats().PointerFires)
	}
}

func TestHoverResetsOnLeave(t *testing.T) {
	p := quietParams()
	p.PointerFire = true
	s := newPathSim(p)

	s.Post(PointerMoveEvent(200, 100))
	for frame := 0; frame < 4; frame++ {
		s.Step(0.05)
	}
	s.Post(PointerLeaveEvent())
	s.Step(0.05)
	if _, _, ok := s.Pointer(); ok {
		t.Error("Expected pointer cleared after leave")
	}

	s.Post(PointerMoveEvent(200, 100))
	for frame := 0; frame < 4; frame++ {
		s.Step(0.05)
	}
	if s.stats.PointerFires != 0 {
		t.Errorf("Expected dwell to restart after leave, got %d fires", s.stats.PointerFires)
	}
}

func TestAutoFireTimer(t *testing.T) {
	p := quietParams()
	p.AutoFire = true
	s := newPathSim(p)

	// Initial delay 0.8s
	for frame := 0; frame < 15; frame++ {
		s.Step(0.05)
	}
	if s.stats.AutoFires != 0 {
		t.Fatalf("Expected no auto fire before initial delay, got %d", s.stats.AutoFires)
	}
	for frame := 0; frame < 5; frame++ {
		s.Step(0.05)
	}
	if s.stats.AutoFires != 1 {
		t.Fatalf("Expected 1 auto fire after initial delay, got %d", s.stats.AutoFires)
	}

	// fixedRand 0.5 draws a 4s interval
	for frame := 0; frame < 70; frame++ {
		s.Step(0.05)
	}
	if s.stats.AutoFires != 1 {
		t.Errorf("Expected interval to hold, got %d auto fires", s.stats.AutoFires)
	}
	for frame := 0; frame < 20; frame++ {
		s.Step(0.05)
	}
	if s.stats.AutoFires+s.stats.SkippedFires != 2 {
		t.Errorf("Expected a second attempt after the interval, got %d fires %d skipped",
			s.stats.AutoFires, s.stats.SkippedFires)
	}
}

func TestHiddenFreezesAndResumesWithoutCatchUp(t *testing.T) {
	p := quietParams()
	p.AutoFire = true
	s := newPathSim(p)
	s.FireFrom(0)
	s.Step(0.05)

	before := s.Signals()
	tBefore := s.Time()

	s.Post(VisibilityEvent(false))
	for frame := 0; frame < 100; frame++ {
		s.Step(0.05)
	}
	if s.Visible() {
		t.Fatal("Expected simulator hidden")
	}
	if s.Time() != tBefore {
		t.Errorf("Expected time frozen at %f, got %f", tBefore, s.Time())
	}
	if got := s.Signals(); len(got) != len(before) || got[0] != before[0] {
		t.Errorf("Expected signals frozen while hidden")
	}
	if s.stats.AutoFires != 0 {
		t.Errorf("Expected no auto fire while hidden, got %d", s.stats.AutoFires)
	}

	s.Post(VisibilityEvent(true))
	s.Step(0.05)
	if s.Time() != tBefore {
		t.Errorf("Expected resume frame to use dt=0, time %f -> %f", tBefore, s.Time())
	}
	s.Step(0.05)
	if s.Time() <= tBefore {
		t.Error("Expected time to advance after resume frame")
	}
}

func TestStepClampsDelta(t *testing.T) {
	s := newPathSim(quietParams())
	s.Step(10)
	if got := s.Time(); got != s.params.MaxFrameDelta {
		t.Errorf("Expected dt clamped to %f, got %f", s.params.MaxFrameDelta, got)
	}
	s.Step(-1)
	if got := s.Time(); got != s.params.MaxFrameDelta {
		t.Errorf("Expected negative dt ignored, got time %f", got)
	}
}

func TestResizeClearsState(t *testing.T) {
	s := New(quietParams(), WithRand(rand.New(rand.NewSource(7))))
	s.Resize(1280, 720)
	s.Burst()
	for frame := 0; frame < 120; frame++ {
		s.Step(0.05)
	}
	if s.SignalCount() == 0 && len(s.Ripples()) == 0 {
		t.Fatal("Expected in-flight state before resize")
	}

	s.Post(ResizeEvent(800, 600))
	s.Step(0)
	if s.SignalCount() != 0 {
		t.Errorf("Expected 0 signals after rebuild, got %d", s.SignalCount())
	}
	if n := len(s.Ripples()); n != 0 {
		t.Errorf("Expected 0 ripples after rebuild, got %d", n)
	}
	for i, g := range s.Afterglow() {
		if g != 0 {
			t.Errorf("Edge %d afterglow %f after rebuild", i, g)
		}
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Expected size 800x600, got %.0fx%.0f", w, h)
	}
	if s.Stats().Rebuilds != 2 {
		t.Errorf("Expected 2 rebuilds, got %d", s.Stats().Rebuilds)
	}
	checkTopology(t, Topology{Nodes: s.Nodes(), Edges: s.Edges()})
}

func TestConfigureSwapsParamsAndLayout(t *testing.T) {
	s := New(quietParams(), WithRand(rand.New(rand.NewSource(3))))
	s.Resize(1280, 720)
	s.Burst()
	if s.SignalCount() < 3 {
		t.Fatalf("Expected burst signals, got %d", s.SignalCount())
	}

	p := quietParams()
	p.MaxSignals = 2
	s.Configure(p, nil)
	if s.SignalCount() != 2 {
		t.Errorf("Expected trim to new cap, got %d", s.SignalCount())
	}
	if s.Stats().Rebuilds != 1 {
		t.Errorf("Expected no rebuild without a layout, got %d", s.Stats().Rebuilds)
	}

	s.Configure(p, DefaultGridLayout())
	if s.Layout().Name() != LayoutGrid {
		t.Errorf("Expected grid layout, got %s", s.Layout().Name())
	}
	if s.EdgeSignalCap() != 2 {
		t.Errorf("Expected grid edge cap 2, got %d", s.EdgeSignalCap())
	}
	if s.SignalCount() != 0 || s.Stats().Rebuilds != 2 {
		t.Errorf("Expected cleared rebuild, got %d signals, %d rebuilds", s.SignalCount(), s.Stats().Rebuilds)
	}
	checkTopology(t, Topology{Nodes: s.Nodes(), Edges: s.Edges()})
}

func TestStaleSignalDropped(t *testing.T) {
	s := newPathSim(quietParams())
	s.signals = append(s.signals, Signal{Edge: 42, Progress: 0.5, Speed: 0.2, Generation: 1})

	s.Step(0.05)
	if s.SignalCount() != 0 {
		t.Errorf("Expected stale signal dropped, %d left", s.SignalCount())
	}
	if s.stats.Stale != 1 {
		t.Errorf("Expected 1 stale drop, got %d", s.stats.Stale)
	}
}

func TestGlobalCapDropsOldest(t *testing.T) {
	p := quietParams()
	p.MaxSignals = 2
	s := newPathSim(p)

	s.FireFrom(0) // edge 0
	s.FireFrom(3) // edge 2
	s.FireFrom(2) // edge 1 only, edge 2 busy
	if s.SignalCount() != 2 {
		t.Fatalf("Expected count held at cap 2, got %d", s.SignalCount())
	}
	sigs := s.Signals()
	if sigs[0].Edge != 2 || sigs[1].Edge != 1 {
		t.Errorf("Expected oldest (edge 0) dropped, got %+v", sigs)
	}
	if s.stats.Dropped != 1 {
		t.Errorf("Expected 1 dropped, got %d", s.stats.Dropped)
	}
	if s.edgeLoad[0] != 0 {
		t.Errorf("Expected edge 0 load released, got %d", s.edgeLoad[0])
	}
}

func TestInvariantsUnderLoad(t *testing.T) {
	layouts := []Layout{DefaultLayeredLayout(), DefaultGridLayout()}
	for _, l := range layouts {
		t.Run(l.Name(), func(t *testing.T) {
			p := DefaultParams()
			p.MaxSignals = 40
			p.FireIntervalMin, p.FireIntervalMax = 0.2, 0.4
			s := New(p, WithLayout(l), WithRand(rand.New(rand.NewSource(3))))
			s.Resize(1280, 720)
			s.Post(PointerMoveEvent(640, 360))

			for frame := 0; frame < 2000; frame++ {
				if frame%150 == 0 {
					s.Burst()
				}
				s.Step(1.0 / 60)
				checkInvariants(t, s)
			}
			if s.stats.Arrivals == 0 {
				t.Error("Expected arrivals under load")
			}
		})
	}
}

func TestBurstFiresLeftmostLayer(t *testing.T) {
	layout := LayeredLayout{Layers: 3, NodesPerLayer: 4, EdgeProbability: 0.5}
	s := New(quietParams(), WithLayout(layout), WithRand(rand.New(rand.NewSource(11))))
	s.Resize(600, 400)

	var sources []FireSource
	s.onFire = func(ev FireEvent) {
		sources = append(sources, ev.Source)
		if ev.Layer != 0 {
			t.Errorf("Burst fired node %d in layer %d", ev.Node, ev.Layer)
		}
	}

	s.Post(BurstEvent())
	s.Step(0)
	if len(sources) != 4 {
		t.Errorf("Expected 4 fires, got %d", len(sources))
	}
	for _, src := range sources {
		if src != SourceBurst {
			t.Errorf("Expected burst source, got %s", src)
		}
	}
	for i, n := range s.nodes {
		if n.Layer == 0 && n.Activation != 1 {
			t.Errorf("Leftmost node %d activation %f", i, n.Activation)
		}
	}
}

func TestEmptyViewportIsInert(t *testing.T) {
	s := New(DefaultParams(), WithRand(rand.New(rand.NewSource(1))))
	s.Resize(0, 0)
	s.Post(PointerMoveEvent(10, 10))
	s.Post(BurstEvent())
	for frame := 0; frame < 100; frame++ {
		s.Step(0.05)
	}
	if s.FireThought() {
		t.Error("Expected FireThought false on empty topology")
	}
	if s.FireFrom(0) {
		t.Error("Expected FireFrom false on empty topology")
	}
	s.Render(render.NewCanvas(0, 0))
}

func TestRenderNilSurface(t *testing.T) {
	s := newPathSim(quietParams())
	s.Render(nil)
	var c *render.Canvas
	s.Render(c)
}

func TestRenderPaintsNetwork(t *testing.T) {
	s := newPathSim(quietParams())
	s.FireFrom(0)
	s.Step(0.05)

	c := render.NewCanvas(500, 200)
	s.Render(c)

	// Corner far from any node keeps the background
	if got := c.At(499, 0); got != visual.RgbBackground {
		t.Errorf("Expected background at corner, got %+v", got)
	}

	bg := render.Luma(visual.RgbBackground)
	n := s.Nodes()[0]
	if got := render.Luma(c.At(int(n.X), int(n.Y))); got <= bg {
		t.Errorf("Expected lit pixel at fired node, luma %d <= background %d", got, bg)
	}

	// Midpoint of the idle edge (2,3) is lit faintly
	mid := render.Luma(c.At(350, 100))
	if mid < bg {
		t.Errorf("Expected edge pixel at least background, luma %d", mid)
	}
}

// cycleLayout places n nodes on a circle, each linked to the next
func cycleLayout(n int) FixedLayout {
	nodes := make([]Node, n)
	edges := make([]Connection, n)
	for i := range nodes {
		a := 2 * math.Pi * float64(i) / float64(n)
		nodes[i] = Node{BaseX: 250 + 150*math.Cos(a), BaseY: 250 + 150*math.Sin(a), Radius: 2, Layer: i}
		edges[i] = Connection{From: i, To: (i + 1) % n}
	}
	return FixedLayout{Nodes: nodes, Edges: edges}
}

func TestNegativeGenerationSpeedupClamped(t *testing.T) {
	p := quietParams()
	p.GenerationSpeedup = -0.2
	s := New(p, WithLayout(cycleLayout(8)), WithRand(fixedRand{0.5}))
	s.Resize(500, 500)

	if got := s.Params().GenerationSpeedup; got != 0 {
		t.Errorf("Expected speedup clamped to 0, got %f", got)
	}

	s.FireFrom(0)
	for frame := 0; frame < 4000; frame++ {
		s.Step(0.05)
		checkInvariants(t, s)
		for _, sig := range s.signals {
			if math.Abs(sig.Speed) < s.params.SignalSpeedMin {
				t.Fatalf("Frame %d: signal slower than the minimum: %+v", frame, sig)
			}
		}
	}
	if n := s.SignalCount(); n != 0 {
		t.Errorf("Expected every wave to finish, %d signals left: %+v", n, s.Signals())
	}
	if s.stats.Arrivals == 0 {
		t.Error("Expected arrivals around the cycle")
	}
}

func TestConfigureDropsSignalsAboveCeiling(t *testing.T) {
	s := newPathSim(quietParams())
	s.signals = append(s.signals,
		Signal{Edge: 0, Progress: 0.2, Speed: 0.2, Generation: 1},
		Signal{Edge: 1, Progress: 0.5, Speed: 0.2, Generation: 3},
	)
	s.recountLoad()

	p := quietParams()
	p.MaxGeneration = 1
	s.Configure(p, nil)

	sigs := s.Signals()
	if len(sigs) != 1 || sigs[0].Generation != 1 {
		t.Fatalf("Expected only the generation 1 signal, got %+v", sigs)
	}
	if s.edgeLoad[1] != 0 {
		t.Errorf("Expected edge 1 load released, got %d", s.edgeLoad[1])
	}
	if s.stats.Dropped != 1 {
		t.Errorf("Expected 1 dropped, got %d", s.stats.Dropped)
	}
	checkInvariants(t, s)
}

func TestResizeRejectsNonFiniteSize(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"NaN width", math.NaN(), 600},
		{"NaN height", 800, math.NaN()},
		{"infinite width", math.Inf(1), 600},
		{"negative infinite height", 800, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(quietParams(), WithRand(rand.New(rand.NewSource(5))))
			s.Resize(tt.w, tt.h)
			if n := len(s.Nodes()); n != 0 {
				t.Errorf("Expected empty topology, got %d nodes", n)
			}
			w, h := s.Size()
			if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) {
				t.Errorf("Expected finite size, got %vx%v", w, h)
			}
			s.Step(0.05)
		})
	}
}

func TestNodeMotionBoundedAndNotAccumulated(t *testing.T) {
	p := quietParams()
	bound := p.OscillationAmplitude + p.OscillationSecondary + 1e-9

	a := newPathSim(p)
	b := newPathSim(p)
	// Same simulated second reached with different frame splits
	for frame := 0; frame < 20; frame++ {
		a.Step(0.05)
	}
	for frame := 0; frame < 40; frame++ {
		b.Step(0.025)
		for i, n := range b.nodes {
			if math.Abs(n.X-n.BaseX) > bound || math.Abs(n.Y-n.BaseY) > bound {
				t.Fatalf("Node %d drifted past the oscillation bound: %+v", i, n)
			}
		}
	}

	for i := range a.nodes {
		na, nb := a.nodes[i], b.nodes[i]
		if math.Abs(na.X-nb.X) > 1e-6 || math.Abs(na.Y-nb.Y) > 1e-6 {
			t.Errorf("Node %d position depends on frame split: (%f,%f) vs (%f,%f)", i, na.X, na.Y, nb.X, nb.Y)
		}
		if na.BaseX != pathLayout().Nodes[i].BaseX {
			t.Errorf("Node %d base moved to %f", i, na.BaseX)
		}
	}

	// Long runs stay within the bound
	for frame := 0; frame < 5000; frame++ {
		a.Step(1.0 / 60)
	}
	for i, n := range a.nodes {
		if math.Abs(n.X-n.BaseX) > bound || math.Abs(n.Y-n.BaseY) > bound {
			t.Errorf("Node %d drifted past the oscillation bound after a long run: %+v", i, n)
		}
	}
}

func TestPointerRepulsion(t *testing.T) {
	p := quietParams()
	p.OscillationAmplitude, p.OscillationSecondary = 0, 0
	p.RepulsionRadius, p.RepulsionStrength = 60, 20
	s := newPathSim(p)

	// Node 0 at (100,100) is 30px from the pointer, node 1 at (200,100) is 70px
	s.Post(PointerMoveEvent(130, 100))
	s.Step(0)
	n0, n1 := s.nodes[0], s.nodes[1]
	if n0.X >= n0.BaseX {
		t.Errorf("Expected node 0 pushed left, away from the pointer, got x=%f", n0.X)
	}
	if want := 90.0; math.Abs(n0.X-want) > 1e-9 || n0.Y != n0.BaseY {
		t.Errorf("Expected node 0 at (%.0f,100), got (%f,%f)", want, n0.X, n0.Y)
	}
	if n1.X != n1.BaseX || n1.Y != n1.BaseY {
		t.Errorf("Expected node 1 outside the radius untouched, got (%f,%f)", n1.X, n1.Y)
	}

	// Zero distance has no direction
	s.Post(PointerMoveEvent(300, 100))
	s.Step(0)
	if n := s.nodes[2]; n.X != n.BaseX || n.Y != n.BaseY {
		t.Errorf("Expected node under the pointer untouched, got (%f,%f)", n.X, n.Y)
	}

	// Leaving restores the rest position, nothing accumulates
	s.Post(PointerLeaveEvent())
	s.Step(0)
	for i, n := range s.nodes {
		if n.X != n.BaseX || n.Y != n.BaseY {
			t.Errorf("Node %d not back at rest: (%f,%f)", i, n.X, n.Y)
		}
	}
}

func TestRipplesAndAfterglowFade(t *testing.T) {
	p := quietParams()
	p.MaxGeneration = 1
	p.RippleMaxAge = 1
	p.AfterglowDecay = 2
	s := newPathSim(p)

	s.FireFrom(0)
	frames := 0
	for len(s.ripples) == 0 {
		s.Step(0.05)
		if frames++; frames > 200 {
			t.Fatal("Expected an arrival ripple")
		}
	}
	if s.afterglow[0] <= 0 {
		t.Fatalf("Expected afterglow on the traversed edge, got %f", s.afterglow[0])
	}

	prev := s.afterglow[0]
	for frame := 0; frame < 10; frame++ {
		s.Step(0.05)
		if s.afterglow[0] > prev {
			t.Fatalf("Afterglow rose from %f to %f", prev, s.afterglow[0])
		}
		prev = s.afterglow[0]
		for _, r := range s.ripples {
			if r.Age > r.MaxAge {
				t.Fatalf("Ripple outlived its max age: %+v", r)
			}
		}
	}
	if len(s.ripples) != 1 {
		t.Errorf("Expected ripple alive mid-life, got %d", len(s.ripples))
	}

	for frame := 0; frame < 20; frame++ {
		s.Step(0.05)
	}
	if len(s.ripples) != 0 {
		t.Errorf("Expected ripple removed past its max age, got %+v", s.ripples)
	}
	for i, g := range s.afterglow {
		if g != 0 {
			t.Errorf("Expected edge %d afterglow decayed to 0, got %f", i, g)
		}
	}
}
