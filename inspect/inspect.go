// Package inspect computes structural statistics for a network topology.
package inspect

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/snappingturtle/synapse/neural"
)

// Report summarizes a topology
type Report struct {
	Nodes        int     `json:"nodes"`
	Edges        int     `json:"edges"`
	Components   int     `json:"components"`
	Largest      int     `json:"largest_component"`
	Isolated     int     `json:"isolated"`
	DegreeMean   float64 `json:"degree_mean"`
	DegreeStdDev float64 `json:"degree_stddev"`
	DegreeMax    int     `json:"degree_max"`
	Layers       int     `json:"layers"`
	Forward      int     `json:"forward_edges"` // From layer < To layer
	Density      float64 `json:"density"`
}

// Connected reports whether every node is reachable from every other
func (r Report) Connected() bool {
	return r.Nodes > 0 && r.Components == 1
}

// Analyze builds an undirected graph from nodes and edges and measures it
// Edges with endpoints outside nodes are ignored.
func Analyze(nodes []neural.Node, edges []neural.Connection) Report {
	r := Report{Nodes: len(nodes)}
	if len(nodes) == 0 {
		return r
	}

	g := simple.NewUndirectedGraph()
	for i := range nodes {
		g.AddNode(simple.Node(int64(i)))
	}

	layers := make(map[int]struct{})
	for _, n := range nodes {
		layers[n.Layer] = struct{}{}
	}
	r.Layers = len(layers)

	for _, e := range edges {
		if e.From < 0 || e.To < 0 || e.From >= len(nodes) || e.To >= len(nodes) || e.From == e.To {
			continue
		}
		if g.HasEdgeBetween(int64(e.From), int64(e.To)) {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To))))
		r.Edges++
		if nodes[e.From].Layer < nodes[e.To].Layer {
			r.Forward++
		}
	}

	for _, cc := range topo.ConnectedComponents(g) {
		r.Components++
		r.Largest = max(r.Largest, len(cc))
	}

	degrees := make([]float64, len(nodes))
	for i := range nodes {
		d := g.From(int64(i)).Len()
		degrees[i] = float64(d)
		r.DegreeMax = max(r.DegreeMax, d)
		if d == 0 {
			r.Isolated++
		}
	}
	if len(degrees) > 1 {
		r.DegreeMean, r.DegreeStdDev = stat.MeanStdDev(degrees, nil)
	} else {
		r.DegreeMean = degrees[0]
	}

	if n := float64(len(nodes)); n > 1 {
		r.Density = 2 * float64(r.Edges) / (n * (n - 1))
	}
	return r
}

// Summary holds means over repeated builds
type Summary struct {
	Runs       int
	Nodes      float64
	Edges      float64
	Connected  int
	Isolated   float64
	DegreeMean float64
}

// Summarize averages reports from repeated builds
func Summarize(reports []Report) Summary {
	s := Summary{Runs: len(reports)}
	if len(reports) == 0 {
		return s
	}
	nodes := make([]float64, len(reports))
	edges := make([]float64, len(reports))
	isolated := make([]float64, len(reports))
	deg := make([]float64, len(reports))
	for i, r := range reports {
		nodes[i] = float64(r.Nodes)
		edges[i] = float64(r.Edges)
		isolated[i] = float64(r.Isolated)
		deg[i] = r.DegreeMean
		if r.Connected() {
			s.Connected++
		}
	}
	s.Nodes = stat.Mean(nodes, nil)
	s.Edges = stat.Mean(edges, nil)
	s.Isolated = stat.Mean(isolated, nil)
	s.DegreeMean = stat.Mean(deg, nil)
	return s
}
