package neural

// Node is a point in the layout
// X/Y are recomputed every step from the base position, never accumulated
type Node struct {
	X, Y         float64 // Drawn position
	BaseX, BaseY float64 // Rest anchor for oscillation and repulsion
	Radius       float64
	Activation   float64 // [0,1], decays every step, raised on arrival
	Phase        float64 // Per-node oscillation offset (radians)
	Layer        int     // Left-to-right layer or grid column
}

// Connection is an undirected edge between two node indices
type Connection struct {
	From, To int
}

// Other returns the opposite endpoint, -1 if node is not on the edge
func (c Connection) Other(node int) int {
	switch node {
	case c.From:
		return c.To
	case c.To:
		return c.From
	default:
		return -1
	}
}

// Touches returns true if node is one of the endpoints
func (c Connection) Touches(node int) bool {
	return c.From == node || c.To == node
}

// pairKey packs the unordered pair for deduplication
func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// Signal is a pulse traveling along one connection
// Speed > 0 travels From→To (progress rises to 1), Speed < 0 travels To→From
type Signal struct {
	Edge       int
	Progress   float64
	Speed      float64
	Generation int
}

// Forward reports the direction of travel
func (s Signal) Forward() bool {
	return s.Speed >= 0
}

// Ripple is a decorative expanding ring left by an arrival
type Ripple struct {
	X, Y      float64
	Age       float64
	MaxAge    float64
	MaxRadius float64
	Hue       int // Generation palette index
}

// Life returns remaining life in [0,1]
func (r Ripple) Life() float64 {
	if r.MaxAge <= 0 {
		return 0
	}
	l := 1 - r.Age/r.MaxAge
	if l < 0 {
		return 0
	}
	return l
}

// Topology is the output of a layout build
type Topology struct {
	Nodes []Node
	Edges []Connection
}

// FireSource identifies what originated a wave
type FireSource uint8

const (
	SourceAuto FireSource = iota
	SourcePointer
	SourceBurst
	SourceManual
)

// String returns human-readable source name
func (s FireSource) String() string {
	switch s {
	case SourceAuto:
		return "auto"
	case SourcePointer:
		return "pointer"
	case SourceBurst:
		return "burst"
	case SourceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// FireEvent describes a wave that was originated
type FireEvent struct {
	Node    int
	Layer   int
	Source  FireSource
	Spawned int // Signals created, 0 when every incident edge was busy
}

// Stats are cumulative counters since construction
type Stats struct {
	Frames       uint64
	Fires        uint64
	AutoFires    uint64
	PointerFires uint64
	Bursts       uint64
	SkippedFires uint64 // Fire attempts with no quiet or calm origin
	Spawned      uint64
	Arrivals     uint64
	Dropped      uint64 // Removed by the global cap
	Stale        uint64 // Removed for referencing a missing edge
	Rebuilds     uint64
}
