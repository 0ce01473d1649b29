package annotation

import (
	"errors"
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// ErrNodeOccupied reports a routing resource node claimed by two nets.
var ErrNodeOccupied = errors.New("routing node already occupied")

// RoutingAnnotation records, for every routing resource node, the net
// occupying it. It is sized to the RR graph at construction, starts
// fully unoccupied, and each entry is write-once.
type RoutingAnnotation struct {
	nets []vpr.AtomNetID
}

// NewRoutingAnnotation creates an unoccupied annotation sized to the
// given routing resource graph.
func NewRoutingAnnotation(g *vpr.RRGraph) *RoutingAnnotation {
	nets := make([]vpr.AtomNetID, g.NumNodes())
	for i := range nets {
		nets[i] = vpr.InvalidAtomNetID
	}
	return &RoutingAnnotation{nets: nets}
}

// SetNet records the net occupying a node. Claiming a node already
// held by a different net fails with ErrNodeOccupied; re-recording
// the same net is a no-op, since a net may revisit a node across
// branch points of its route tree.
func (a *RoutingAnnotation) SetNet(node vpr.RRNodeID, net vpr.AtomNetID) error {
	prev := a.nets[node]
	if prev != vpr.InvalidAtomNetID && prev != net {
		return fmt.Errorf("%w: node %d held by net %d, claimed by net %d",
			ErrNodeOccupied, node, prev, net)
	}
	a.nets[node] = net
	return nil
}

// Net returns the net occupying a node, or InvalidAtomNetID when the
// node is unused.
func (a *RoutingAnnotation) Net(node vpr.RRNodeID) vpr.AtomNetID {
	return a.nets[node]
}

// NumNodes returns the number of annotated routing resource nodes.
func (a *RoutingAnnotation) NumNodes() int {
	return len(a.nets)
}
