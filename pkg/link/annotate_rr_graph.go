package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// annotateRRGraphCircuitModels attaches a circuit model to every
// segment and switch type of the routing resource graph. Channel
// wires and switch drivers both need one; a missing reference is a
// configuration error, never silently defaulted.
func annotateRRGraphCircuitModels(g *vpr.RRGraph, a *arch.Architecture,
	ann *annotation.DeviceAnnotation, log logging.Logger) error {

	segModels := make([]arch.CircuitModelID, g.NumSegments())
	for seg := 0; seg < g.NumSegments(); seg++ {
		if seg >= len(a.SegmentCircuitModels) || a.SegmentCircuitModels[seg] == "" {
			return fmt.Errorf("%w: RR segment %d declares no chan-wire model",
				ErrMissingCircuitModel, seg)
		}
		model, err := a.CircuitLib.ModelByName(a.SegmentCircuitModels[seg])
		if err != nil {
			return fmt.Errorf("%w: RR segment %d: %v", ErrMissingCircuitModel, seg, err)
		}
		segModels[seg] = model
	}
	ann.SetRRSegmentCircuitModels(segModels)

	switchModels := make([]arch.CircuitModelID, g.NumSwitches())
	for sw := 0; sw < g.NumSwitches(); sw++ {
		if sw >= len(a.SwitchCircuitModels) || a.SwitchCircuitModels[sw] == "" {
			return fmt.Errorf("%w: RR switch %d declares no driving model",
				ErrMissingCircuitModel, sw)
		}
		model, err := a.CircuitLib.ModelByName(a.SwitchCircuitModels[sw])
		if err != nil {
			return fmt.Errorf("%w: RR switch %d: %v", ErrMissingCircuitModel, sw, err)
		}
		switchModels[sw] = model
	}
	ann.SetRRSwitchCircuitModels(switchModels)

	log.Debug("annotated RR graph circuit models",
		logging.Int("segments", g.NumSegments()), logging.Int("switches", g.NumSwitches()))
	return nil
}
