// Package gsb groups routing resource graph nodes into per-tile
// general switch blocks (GSBs). A GSB bundles the routing tracks and
// block pins on the four sides of one channel crossing; downstream
// netlist generators emit one module per structurally unique GSB.
package gsb

import (
	"fmt"
	"strings"

	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// Flow tells whether a node enters or leaves the switch block.
type Flow int

const (
	// FlowIn nodes drive into the switch block
	FlowIn Flow = iota
	// FlowOut nodes are driven by the switch block
	FlowOut
)

// String returns the string representation of a flow
func (f Flow) String() string {
	if f == FlowIn {
		return "in"
	}
	return "out"
}

// SideNode is one routing resource attached to a GSB side.
type SideNode struct {
	Node vpr.RRNodeID
	Type vpr.RRNodeType
	Flow Flow
	Ptc  int
	// SegmentID is the wire segment type for tracks, -1 for pins
	SegmentID int
	// FanIn is the in-degree of the node in the RR graph; the fan-in
	// of FlowOut nodes determines the multiplexers the GSB needs
	FanIn int
}

// RRGSB is the general switch block at one channel crossing: the
// tracks and pins grouped by side, in deterministic node-ID order.
type RRGSB struct {
	X     int
	Y     int
	sides [4][]SideNode
}

// SideNodes returns the nodes attached to one side.
func (g *RRGSB) SideNodes(side vpr.Side) []SideNode {
	return g.sides[side]
}

// NumNodes returns the total node count across all sides.
func (g *RRGSB) NumNodes() int {
	n := 0
	for _, s := range g.sides {
		n += len(s)
	}
	return n
}

// OutputNodes returns every FlowOut node of the GSB across all sides
// in side-major order. These are the nodes whose fan-in implies
// switch-block multiplexers.
func (g *RRGSB) OutputNodes() []SideNode {
	var out []SideNode
	for _, side := range vpr.AllSides {
		for _, n := range g.sides[side] {
			if n.Flow == FlowOut {
				out = append(out, n)
			}
		}
	}
	return out
}

// Signature encodes the structural identity of the GSB: the
// type/flow/segment/fan-in pattern of every side. Two GSBs are
// structurally identical iff their signatures are equal, which is
// the identity the mux library deduplication builds on.
func (g *RRGSB) Signature() string {
	var b strings.Builder
	for _, side := range vpr.AllSides {
		fmt.Fprintf(&b, "%s:", side)
		for _, n := range g.sides[side] {
			fmt.Fprintf(&b, "%s/%s/%d/%d/%d;", n.Type, n.Flow, n.Ptc, n.SegmentID, n.FanIn)
		}
		b.WriteByte('|')
	}
	return b.String()
}
