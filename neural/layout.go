package neural

import (
	"math"
	"slices"

	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/vmath"
)

// Layout builds a topology for a viewport
// Implementations must return edges with valid, distinct endpoints; the
// simulator sanitizes the result regardless
type Layout interface {
	Name() string
	Build(width, height float64, rng Rand) Topology
	EdgeSignalCap() int
}

// Layout names accepted by LayoutByName
const (
	LayoutLayered = "layered"
	LayoutGrid    = "grid"
)

// LayoutByName returns the default-tuned layout for a name, false if unknown
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case LayoutLayered, "":
		return DefaultLayeredLayout(), true
	case LayoutGrid:
		return DefaultGridLayout(), true
	default:
		return nil, false
	}
}

// edgeSet accumulates deduplicated edges
type edgeSet struct {
	edges []Connection
	seen  map[uint64]struct{}
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[uint64]struct{})}
}

// add appends a→b unless it is a self loop or the unordered pair exists
func (s *edgeSet) add(a, b int) bool {
	if a == b {
		return false
	}
	k := pairKey(a, b)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.edges = append(s.edges, Connection{From: a, To: b})
	return true
}

// newNode creates a node resting at (x, y) with random radius and phase
func newNode(x, y float64, layer int, rng Rand) Node {
	return Node{
		X: x, Y: y,
		BaseX: x, BaseY: y,
		Radius: uniform(rng, parameter.NodeRadiusMin, parameter.NodeRadiusMax),
		Phase:  rng.Float64() * 2 * math.Pi,
		Layer:  layer,
	}
}

// ===== LAYERED =====

// LayeredLayout arranges nodes in left-to-right columns with forward edges
type LayeredLayout struct {
	Layers          int // 0 derives from width
	NodesPerLayer   int // 0 derives from height
	EdgeProbability float64
	SkipProbability float64
	Padding         float64
	Jitter          float64 // Fraction of the cell size
}

// DefaultLayeredLayout returns the tuned layered layout
func DefaultLayeredLayout() LayeredLayout {
	return LayeredLayout{
		EdgeProbability: parameter.LayerEdgeProbability,
		SkipProbability: parameter.LayerSkipProbability,
		Padding:         parameter.LayoutPadding,
		Jitter:          parameter.LayoutJitter,
	}
}

func (l LayeredLayout) Name() string { return LayoutLayered }

func (l LayeredLayout) EdgeSignalCap() int { return parameter.LayeredEdgeSignalCap }

// Dimensions returns the layer count and nodes per layer used for a viewport
func (l LayeredLayout) Dimensions(width, height float64) (layers, perLayer int) {
	layers = l.Layers
	if layers <= 0 {
		layers = min(max(int(width/parameter.LayerSpacing)+1, parameter.LayerCountMin), parameter.LayerCountMax)
	}
	perLayer = l.NodesPerLayer
	if perLayer <= 0 {
		perLayer = min(max(int(height/parameter.LayerNodeSpacing), parameter.LayerNodesMin), parameter.LayerNodesMax)
	}
	// A single column has no forward edges to satisfy the no-orphan guarantee
	if layers < 2 && layers*perLayer > 1 {
		layers = 2
	}
	return layers, perLayer
}

// Build places layers*perLayer nodes and connects consecutive layers
// Every node has an outgoing edge (except the last layer) and every node
// past the first layer has an incoming edge
func (l LayeredLayout) Build(width, height float64, rng Rand) Topology {
	if !usableViewport(width, height) {
		return Topology{}
	}
	layers, perLayer := l.Dimensions(width, height)

	pad := min(l.Padding, width/4, height/4)
	if pad < 0 {
		pad = 0
	}
	usableW := width - 2*pad
	usableH := height - 2*pad
	colW := usableW
	if layers > 1 {
		colW = usableW / float64(layers-1)
	}
	rowH := usableH / float64(perLayer)

	nodes := make([]Node, 0, layers*perLayer)
	for i := 0; i < layers; i++ {
		for j := 0; j < perLayer; j++ {
			x := pad + float64(i)*colW + (rng.Float64()*2-1)*l.Jitter*colW*0.5
			y := pad + (float64(j)+0.5)*rowH + (rng.Float64()*2-1)*l.Jitter*rowH
			x = vmath.Clamp(x, pad*0.5, width-pad*0.5)
			y = vmath.Clamp(y, pad*0.5, height-pad*0.5)
			nodes = append(nodes, newNode(x, y, i, rng))
		}
	}

	idx := func(layer, j int) int { return layer*perLayer + j }
	es := newEdgeSet()

	for i := 0; i < layers-1; i++ {
		hasIn := make([]bool, perLayer)
		for j := 0; j < perLayer; j++ {
			out := 0
			for k := 0; k < perLayer; k++ {
				if rng.Float64() < l.EdgeProbability {
					es.add(idx(i, j), idx(i+1, k))
					hasIn[k] = true
					out++
				}
			}
			if out == 0 {
				k := rng.Intn(perLayer)
				es.add(idx(i, j), idx(i+1, k))
				hasIn[k] = true
			}
		}
		for k, ok := range hasIn {
			if !ok {
				es.add(idx(i, rng.Intn(perLayer)), idx(i+1, k))
			}
		}
	}

	for i := 0; i < layers-2; i++ {
		for j := 0; j < perLayer; j++ {
			for k := 0; k < perLayer; k++ {
				if rng.Float64() < l.SkipProbability {
					es.add(idx(i, j), idx(i+2, k))
				}
			}
		}
	}

	return Topology{Nodes: nodes, Edges: es.edges}
}

// ===== GRID =====

// GridLayout places nodes on a jittered grid around a reserved center zone
// and links nearest neighbours, preferring the right-hand side
type GridLayout struct {
	CellWidth      float64
	CellHeight     float64
	MinConnections int
	MaxConnections int
	LinkDistance   float64 // In cell diagonals
	ZoneWidth      float64 // Reserved zone as a fraction of the viewport, 0 disables
	ZoneHeight     float64
	ZoneMargin     float64 // Depth inside the zone before a node is excluded
	Padding        float64
	Jitter         float64
}

// DefaultGridLayout returns the tuned grid layout
func DefaultGridLayout() GridLayout {
	return GridLayout{
		CellWidth:      parameter.GridCellWidth,
		CellHeight:     parameter.GridCellHeight,
		MinConnections: parameter.GridMinConnections,
		MaxConnections: parameter.GridMaxConnections,
		LinkDistance:   parameter.GridLinkDistance,
		ZoneWidth:      parameter.ReservedZoneWidth,
		ZoneHeight:     parameter.ReservedZoneHeight,
		ZoneMargin:     parameter.ReservedZoneMargin,
		Padding:        parameter.LayoutPadding,
		Jitter:         parameter.LayoutJitter,
	}
}

func (g GridLayout) Name() string { return LayoutGrid }

func (g GridLayout) EdgeSignalCap() int { return parameter.GridEdgeSignalCap }

// deepInside reports whether (x, y) lies inside the reserved zone by more than the margin
func (g GridLayout) deepInside(x, y, width, height float64) bool {
	if g.ZoneWidth <= 0 || g.ZoneHeight <= 0 {
		return false
	}
	zw, zh := width*g.ZoneWidth, height*g.ZoneHeight
	left := (width-zw)/2 + g.ZoneMargin
	right := (width+zw)/2 - g.ZoneMargin
	top := (height-zh)/2 + g.ZoneMargin
	bottom := (height+zh)/2 - g.ZoneMargin
	return x > left && x < right && y > top && y < bottom
}

// Build places the grid and links neighbours
func (g GridLayout) Build(width, height float64, rng Rand) Topology {
	if !usableViewport(width, height) {
		return Topology{}
	}
	cellW, cellH := g.CellWidth, g.CellHeight
	if cellW <= 0 {
		cellW = parameter.GridCellWidth
	}
	if cellH <= 0 {
		cellH = parameter.GridCellHeight
	}
	pad := max(min(g.Padding, width/4, height/4), 0)
	cols := max(int((width-2*pad)/cellW), 2)
	rows := max(int((height-2*pad)/cellH), 2)
	cw := (width - 2*pad) / float64(cols)
	ch := (height - 2*pad) / float64(rows)

	var nodes []Node
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := pad + (float64(c)+0.5)*cw + (rng.Float64()*2-1)*g.Jitter*cw*0.5
			y := pad + (float64(r)+0.5)*ch + (rng.Float64()*2-1)*g.Jitter*ch*0.5
			if g.deepInside(x, y, width, height) {
				continue
			}
			nodes = append(nodes, newNode(x, y, c, rng))
		}
	}

	minConn := max(g.MinConnections, 1)
	maxConn := max(g.MaxConnections, minConn)
	threshold := g.LinkDistance * math.Hypot(cw, ch)

	es := newEdgeSet()
	degree := make([]int, len(nodes))
	link := func(a, b int) {
		if es.add(a, b) {
			degree[a]++
			degree[b]++
		}
	}

	type candidate struct {
		idx  int
		dist float64
	}
	near := make([]candidate, 0, len(nodes))

	for i := range nodes {
		target := minConn + rng.Intn(maxConn-minConn+1)

		near = near[:0]
		for j := range nodes {
			if j == i {
				continue
			}
			d := vmath.V2FDist(nodes[i].basePos(), nodes[j].basePos())
			if d <= threshold {
				near = append(near, candidate{j, d})
			}
		}
		slices.SortFunc(near, func(a, b candidate) int {
			switch {
			case a.dist < b.dist:
				return -1
			case a.dist > b.dist:
				return 1
			default:
				return a.idx - b.idx
			}
		})

		// Right-hand neighbours first to bias flow left to right
		for _, c := range near {
			if degree[i] >= target {
				break
			}
			if nodes[c.idx].BaseX > nodes[i].BaseX {
				link(i, c.idx)
			}
		}
		for _, c := range near {
			if degree[i] >= minConn {
				break
			}
			link(i, c.idx)
		}

		// Threshold too tight for this node, take the closest regardless
		if degree[i] == 0 && len(nodes) > 1 {
			best, bestD := -1, math.MaxFloat64
			for j := range nodes {
				if j == i {
					continue
				}
				if d := vmath.V2FDist(nodes[i].basePos(), nodes[j].basePos()); d < bestD {
					best, bestD = j, d
				}
			}
			link(i, best)
		}
	}

	return Topology{Nodes: nodes, Edges: es.edges}
}

// usableViewport rejects empty and non-finite viewports
func usableViewport(width, height float64) bool {
	return width > 0 && height > 0 && !math.IsInf(width, 0) && !math.IsInf(height, 0)
}

// ===== FIXED =====

// FixedLayout returns the same topology for every viewport
// Used for scripted scenes and tests
type FixedLayout struct {
	Nodes   []Node
	Edges   []Connection
	EdgeCap int
}

func (f FixedLayout) Name() string { return "fixed" }

func (f FixedLayout) EdgeSignalCap() int {
	if f.EdgeCap <= 0 {
		return 1
	}
	return f.EdgeCap
}

// Build returns copies so the simulator never aliases the template
func (f FixedLayout) Build(width, height float64, rng Rand) Topology {
	nodes := slices.Clone(f.Nodes)
	for i := range nodes {
		nodes[i].X, nodes[i].Y = nodes[i].BaseX, nodes[i].BaseY
	}
	return Topology{Nodes: nodes, Edges: slices.Clone(f.Edges)}
}

// basePos returns the rest anchor as a vector
func (n Node) basePos() vmath.Vec2F {
	return vmath.Vec2F{X: n.BaseX, Y: n.BaseY}
}

// sanitize drops out-of-range, self-loop and duplicate edges
func sanitize(t Topology) (Topology, int) {
	es := newEdgeSet()
	n := len(t.Nodes)
	for _, e := range t.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			continue
		}
		es.add(e.From, e.To)
	}
	dropped := len(t.Edges) - len(es.edges)
	t.Edges = es.edges
	return t, dropped
}
