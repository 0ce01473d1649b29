package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/gsb"
	"github.com/TOM-once/OpenFPGA/pkg/muxlib"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// buildMuxLibrary discovers every multiplexer structure the device
// implies (switch-block and connection-block muxes from the GSBs,
// programmable interconnect muxes from the pb-type modes) and
// deduplicates them into a canonical library. Only the unique GSB
// patterns are scanned: instances of a shared pattern contribute the
// same signatures by construction. Entry IDs follow first-seen
// order, so repeated builds over the same inputs yield identical
// libraries.
func buildMuxLibrary(g *vpr.RRGraph, a *arch.Architecture,
	ann *annotation.DeviceAnnotation, device *gsb.DeviceRRGSB) (*muxlib.Library, error) {

	lib := muxlib.NewLibrary()

	for _, sb := range device.UniqueGSBs() {
		for _, out := range sb.OutputNodes() {
			if out.FanIn < 2 {
				continue
			}
			// The driving switch of every incoming edge determines
			// the mux circuit; a legal RR graph drives one node with
			// one switch type.
			edges := g.FanIn(out.Node)
			model := ann.RRSwitchCircuitModel(edges[0].SwitchID)
			if model == arch.InvalidCircuitModelID {
				return nil, fmt.Errorf("%w: switch %d driving RR node %d",
					ErrMissingCircuitModel, edges[0].SwitchID, out.Node)
			}
			lib.FindOrAdd(signatureFor(a, model, out.FanIn))
		}
	}

	for _, root := range a.PbTypes {
		var walkErr error
		root.Walk(func(p *arch.PbType) {
			if walkErr != nil {
				return
			}
			for _, mode := range p.Modes {
				for i := range mode.Interconnects {
					ic := &mode.Interconnects[i]
					if ic.Type == arch.InterconnectDirect || len(ic.Inputs) < 2 {
						continue
					}
					model := ann.InterconnectCircuitModel(ic)
					if model == arch.InvalidCircuitModelID {
						walkErr = fmt.Errorf("%w: interconnect %q of %q",
							ErrMissingCircuitModel, ic.Name, p.Name)
						return
					}
					lib.FindOrAdd(signatureFor(a, model, len(ic.Inputs)))
				}
			}
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return lib, nil
}

// signatureFor derives the structural signature of one mux instance
// from its circuit model and input count.
func signatureFor(a *arch.Architecture, model arch.CircuitModelID, size int) muxlib.Signature {
	m := a.CircuitLib.Model(model)
	sig := muxlib.Signature{Model: model, Size: size, Topology: m.Topology}
	if m.Topology == arch.MuxMultiLevel {
		sig.Levels = m.NumLevels
	}
	return sig
}
