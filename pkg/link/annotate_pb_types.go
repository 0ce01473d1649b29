package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
)

// annotatePbTypes resolves, for every pb-type in the architecture,
// its physical implementation and the circuit models of its
// primitives and mode interconnects. Re-running on an unchanged
// architecture recomputes identical bindings.
func annotatePbTypes(a *arch.Architecture, ann *annotation.DeviceAnnotation, log logging.Logger) error {
	for _, root := range a.PbTypes {
		var walkErr error
		root.Walk(func(p *arch.PbType) {
			if walkErr != nil {
				return
			}
			walkErr = annotateOnePbType(a, p, ann, log)
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

func annotateOnePbType(a *arch.Architecture, p *arch.PbType, ann *annotation.DeviceAnnotation, log logging.Logger) error {
	// Physical pb-type binding: operating pb-types designate their
	// implementation by name, everything else is physical itself.
	physical := p
	if p.IsOperating() {
		found, err := a.FindPbType(p.PhysicalPbTypeName)
		if err != nil {
			return fmt.Errorf("%w: operating pb-type %q designates %q: %v",
				ErrInvalidPhysicalBinding, p.Name, p.PhysicalPbTypeName, err)
		}
		physical = found
	}
	ann.SetPhysicalPbType(p, physical)
	log.Debug("bound physical pb-type",
		logging.String("operating", p.Name), logging.String("physical", physical.Name))

	// Mode-selection bits configure the physical implementation to
	// behave as this pb-type. Downstream bitstream generation reads
	// them back from the annotation.
	if p.ModeBits != "" {
		if !validModeBits(p.ModeBits) {
			return fmt.Errorf("%w: pb-type %q declares %q", ErrInvalidModeBits, p.Name, p.ModeBits)
		}
		ann.SetPbModeBits(p, p.ModeBits)
	}

	// Physical primitives carry the circuit model downstream netlist
	// generation instantiates. Operating primitives borrow their
	// physical counterpart's model, resolved on that pb-type.
	if p.IsPrimitive() && !p.IsOperating() {
		if p.CircuitModel == "" {
			return fmt.Errorf("%w: physical primitive %q declares no circuit model",
				ErrMissingCircuitModel, p.Name)
		}
		model, err := a.CircuitLib.ModelByName(p.CircuitModel)
		if err != nil {
			return fmt.Errorf("%w: primitive %q: %v", ErrMissingCircuitModel, p.Name, err)
		}
		ann.SetPbCircuitModel(p, model)
	}

	// Mode interconnects: muxes and crossbars are programmable, so
	// mode selection needs a resolvable circuit model. Direct wires
	// carry no configuration and may omit one.
	for _, mode := range p.Modes {
		for i := range mode.Interconnects {
			ic := &mode.Interconnects[i]
			if ic.ModeBits != "" {
				if !validModeBits(ic.ModeBits) {
					return fmt.Errorf("%w: interconnect %q in mode %q of %q declares %q",
						ErrInvalidModeBits, ic.Name, mode.Name, p.Name, ic.ModeBits)
				}
				ann.SetInterconnectModeBits(ic, ic.ModeBits)
			}
			needsModel := ic.Type != arch.InterconnectDirect && len(ic.Inputs) > 1
			if ic.CircuitModel == "" {
				if needsModel {
					return fmt.Errorf("%w: interconnect %q in mode %q of %q requires mode selection",
						ErrMissingCircuitModel, ic.Name, mode.Name, p.Name)
				}
				continue
			}
			model, err := a.CircuitLib.ModelByName(ic.CircuitModel)
			if err != nil {
				return fmt.Errorf("%w: interconnect %q in mode %q of %q: %v",
					ErrMissingCircuitModel, ic.Name, mode.Name, p.Name, err)
			}
			ann.SetInterconnectCircuitModel(ic, model)
		}
	}
	return nil
}

// validModeBits reports whether a bit string holds only 0s and 1s.
func validModeBits(bits string) bool {
	for _, c := range bits {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
