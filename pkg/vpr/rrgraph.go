package vpr

// RRNodeID identifies a node in the routing resource graph.
type RRNodeID int

// InvalidRRNodeID marks an absent routing resource node.
const InvalidRRNodeID RRNodeID = -1

// RRNodeType classifies a routing resource node
type RRNodeType int

const (
	// RRSource is the starting point of a net inside a logic block
	RRSource RRNodeType = iota
	// RRSink is the ending point of a net inside a logic block
	RRSink
	// RRIPin is a logic block input pin
	RRIPin
	// RROPin is a logic block output pin
	RROPin
	// RRChanX is a horizontal routing track
	RRChanX
	// RRChanY is a vertical routing track
	RRChanY
)

// String returns the string representation of a node type
func (t RRNodeType) String() string {
	switch t {
	case RRSource:
		return "SOURCE"
	case RRSink:
		return "SINK"
	case RRIPin:
		return "IPIN"
	case RROPin:
		return "OPIN"
	case RRChanX:
		return "CHANX"
	case RRChanY:
		return "CHANY"
	default:
		return "UNKNOWN"
	}
}

// IsChannel reports whether the node type is a routing track
func (t RRNodeType) IsChannel() bool {
	return t == RRChanX || t == RRChanY
}

// Direction is the signal direction of a routing track
type Direction int

const (
	// DirNone applies to non-track nodes (pins, sources, sinks)
	DirNone Direction = iota
	// DirInc runs in increasing coordinate order (left-to-right, bottom-to-top)
	DirInc
	// DirDec runs in decreasing coordinate order
	DirDec
	// DirBidir carries signals both ways; unsupported by this pipeline
	DirBidir
)

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "NONE"
	case DirInc:
		return "INC"
	case DirDec:
		return "DEC"
	case DirBidir:
		return "BIDIR"
	default:
		return "UNKNOWN"
	}
}

// Side is the tile side a pin or track faces
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
	// SideNone applies to nodes without a side (sources, sinks)
	SideNone
)

// AllSides lists the four tile sides in clockwise order starting at top.
var AllSides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

// String returns the string representation of a side
func (s Side) String() string {
	switch s {
	case SideTop:
		return "TOP"
	case SideRight:
		return "RIGHT"
	case SideBottom:
		return "BOTTOM"
	case SideLeft:
		return "LEFT"
	case SideNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// RRNode is one routing resource: a track segment, a pin, or a
// net source/sink. Coordinates follow the VPR convention: a track
// spans [XLow..XHigh] x [YLow..YHigh]; pins sit on a single tile.
type RRNode struct {
	ID        RRNodeID
	Type      RRNodeType
	Direction Direction
	Side      Side
	XLow      int
	YLow      int
	XHigh     int
	YHigh     int
	// Ptc is the pin/track class index inside its channel or tile
	Ptc int
	// SegmentID selects the wire segment type for tracks, -1 otherwise
	SegmentID int
}

// RREdge is a programmable connection between two routing resources,
// realized by the switch identified by SwitchID.
type RREdge struct {
	Src      RRNodeID
	Dst      RRNodeID
	SwitchID int
}

// RRGraph is the routing resource graph produced by the upstream
// routing engine. It is read-only for the linking pipeline: passes
// traverse it and record derived facts in their own annotations.
type RRGraph struct {
	nodes   []RRNode
	edges   []RREdge
	fanIn   [][]int // per node, indices into edges arriving at it
	fanOut  [][]int // per node, indices into edges leaving it
	numSeg  int
	numSwit int
}

// NewRRGraph creates an empty routing resource graph sized for the
// given number of segment and switch types.
func NewRRGraph(numSegments, numSwitches int) *RRGraph {
	return &RRGraph{
		numSeg:  numSegments,
		numSwit: numSwitches,
	}
}

// AddNode appends a node and returns its ID.
func (g *RRGraph) AddNode(node RRNode) RRNodeID {
	id := RRNodeID(len(g.nodes))
	node.ID = id
	g.nodes = append(g.nodes, node)
	g.fanIn = append(g.fanIn, nil)
	g.fanOut = append(g.fanOut, nil)
	return id
}

// AddEdge connects src to dst through the given switch.
func (g *RRGraph) AddEdge(src, dst RRNodeID, switchID int) {
	idx := len(g.edges)
	g.edges = append(g.edges, RREdge{Src: src, Dst: dst, SwitchID: switchID})
	g.fanOut[src] = append(g.fanOut[src], idx)
	g.fanIn[dst] = append(g.fanIn[dst], idx)
}

// NumNodes returns the number of routing resource nodes.
func (g *RRGraph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of routing resource edges.
func (g *RRGraph) NumEdges() int {
	return len(g.edges)
}

// NumSegments returns the number of wire segment types.
func (g *RRGraph) NumSegments() int {
	return g.numSeg
}

// NumSwitches returns the number of switch types.
func (g *RRGraph) NumSwitches() int {
	return g.numSwit
}

// Node returns the node with the given ID.
func (g *RRGraph) Node(id RRNodeID) RRNode {
	return g.nodes[id]
}

// Nodes returns all node IDs in ascending order.
func (g *RRGraph) Nodes() []RRNodeID {
	ids := make([]RRNodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = RRNodeID(i)
	}
	return ids
}

// FanIn returns the edges arriving at the given node.
func (g *RRGraph) FanIn(id RRNodeID) []RREdge {
	out := make([]RREdge, len(g.fanIn[id]))
	for i, idx := range g.fanIn[id] {
		out[i] = g.edges[idx]
	}
	return out
}

// FanOut returns the edges leaving the given node.
func (g *RRGraph) FanOut(id RRNodeID) []RREdge {
	out := make([]RREdge, len(g.fanOut[id]))
	for i, idx := range g.fanOut[id] {
		out[i] = g.edges[idx]
	}
	return out
}

// FanInCount returns the number of edges arriving at the node without
// materializing them.
func (g *RRGraph) FanInCount(id RRNodeID) int {
	return len(g.fanIn[id])
}

// NodesInRange returns the IDs of nodes of the given type whose span
// covers tile (x, y). Order follows node ID order, so repeated calls
// over the same graph are deterministic.
func (g *RRGraph) NodesInRange(t RRNodeType, x, y int) []RRNodeID {
	var ids []RRNodeID
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Type != t {
			continue
		}
		if x < n.XLow || x > n.XHigh || y < n.YLow || y > n.YHigh {
			continue
		}
		ids = append(ids, RRNodeID(i))
	}
	return ids
}
