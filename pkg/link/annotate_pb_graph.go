package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
)

// annotatePbGraph instantiates the pb graph of every root pb-type,
// assigns each node a sequential index unique within its type class,
// and binds operating nodes and pins to their physical counterparts.
// Downstream passes address physical resources by these indices, so
// assignment follows instantiation order and is reproducible.
func annotatePbGraph(a *arch.Architecture, ann *annotation.DeviceAnnotation, log logging.Logger) (map[string]*arch.PbGraph, error) {
	graphs := make(map[string]*arch.PbGraph)
	for _, root := range a.PbTypes {
		g := arch.BuildPbGraph(root)
		graphs[root.Name] = g

		// Sequential index per type class, in walk order.
		counters := make(map[*arch.PbType]int)
		nodesOf := make(map[*arch.PbType][]*arch.PbGraphNode)
		g.Walk(func(n *arch.PbGraphNode) {
			idx := counters[n.Type]
			counters[n.Type] = idx + 1
			ann.SetPbGraphNodeIndex(n, idx)
			nodesOf[n.Type] = append(nodesOf[n.Type], n)
		})

		// Bind operating nodes to the physical node sharing their
		// index, and their pins by structural position.
		var bindErr error
		g.Walk(func(n *arch.PbGraphNode) {
			if bindErr != nil {
				return
			}
			bindErr = bindPhysicalNode(n, ann, nodesOf, log)
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}
	return graphs, nil
}

func bindPhysicalNode(n *arch.PbGraphNode, ann *annotation.DeviceAnnotation,
	nodesOf map[*arch.PbType][]*arch.PbGraphNode, log logging.Logger) error {

	physType := ann.PhysicalPbType(n.Type)
	if physType == nil {
		return fmt.Errorf("%w: pb-type %q has no physical binding", ErrInvalidPhysicalBinding, n.Type.Name)
	}

	var physNode *arch.PbGraphNode
	if physType == n.Type {
		physNode = n
	} else {
		idx := ann.PbGraphNodeIndex(n)
		candidates := nodesOf[physType]
		if idx < 0 || idx >= len(candidates) {
			return fmt.Errorf("%w: operating node %s has index %d but physical type %q has %d instances",
				ErrInvalidPhysicalBinding, n.Path(), idx, physType.Name, len(candidates))
		}
		physNode = candidates[idx]
	}
	ann.SetPhysicalPbGraphNode(n, physNode)
	log.Debug("bound physical pb-graph node",
		logging.PbPath(n.Path()), logging.String("physical", physNode.Path()))

	// Pins bind by structural position within each direction class.
	for _, pair := range []struct{ op, phys []arch.PbGraphPin }{
		{n.InputPins, physNode.InputPins},
		{n.OutputPins, physNode.OutputPins},
		{n.ClockPins, physNode.ClockPins},
	} {
		if len(pair.op) > len(pair.phys) {
			return fmt.Errorf("%w: %s has %d pins but physical node %s has only %d",
				ErrInvalidPhysicalBinding, n.Path(), len(pair.op), physNode.Path(), len(pair.phys))
		}
		for i := range pair.op {
			ann.SetPhysicalPin(&pair.op[i], &pair.phys[i])
		}
	}
	return nil
}
