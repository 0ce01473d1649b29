package link

import (
	"errors"
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// annotateRRNodeNets walks every routed net's realized path and
// records the occupying net on each routing resource node. Routing
// legality is guaranteed upstream: at most one net per node. A
// violation is upstream corruption, not something this pass repairs,
// so it fails fast.
func annotateRRNodeNets(device *vpr.Device, ann *annotation.RoutingAnnotation, log logging.Logger) (int, error) {
	annotated := 0
	for _, trace := range device.Routing.Traces() {
		for _, node := range trace.Nodes {
			if err := ann.SetNet(node, trace.Net); err != nil {
				if errors.Is(err, annotation.ErrNodeOccupied) {
					return annotated, fmt.Errorf("%w: net %q: %v",
						ErrIllegalNodeSharing, device.Atom.Net(trace.Net).Name, err)
				}
				return annotated, err
			}
		}
		annotated++
		log.Debug("annotated routed net",
			logging.NetName(device.Atom.Net(trace.Net).Name),
			logging.Int("nodes", len(trace.Nodes)))
	}
	return annotated, nil
}
