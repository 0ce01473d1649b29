package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// checkRRGraph validates the structural preconditions the rest of
// the pipeline assumes. The GSB and mux-library builders only handle
// uni-directional routing tracks, so any bi-directional channel node
// rejects the graph outright.
func checkRRGraph(g *vpr.RRGraph) error {
	for _, id := range g.Nodes() {
		node := g.Node(id)
		if !node.Type.IsChannel() {
			continue
		}
		if node.Direction == vpr.DirBidir {
			return fmt.Errorf("%w: %s node %d at (%d, %d) is bi-directional",
				ErrUnsupportedTopology, node.Type, id, node.XLow, node.YLow)
		}
	}
	return nil
}
