// Package repack re-derives the physical packing of an already
// clustered design: every atom's operating pb is lowered onto its
// physical pb using the link phase's bindings, optionally steered by
// user design constraints, and the truth tables of combinational
// lookup elements are regenerated over physical pin ordering.
package repack

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// PackPhysicalPbs constructs the physical pb realization of every
// clustered block. Design constraints pinning atom nets to specific
// physical pins are honored exactly and override the default
// structural mapping; a net displaced from its default pin by a
// constraint moves to the first free input pin of its physical node.
// Returns the annotation and the number of constraints applied.
func PackPhysicalPbs(device *vpr.Device, linkCtx *link.Context,
	dc *DesignConstraints, log logging.Logger) (*annotation.ClusteringAnnotation, int, error) {

	if err := dc.Validate(); err != nil {
		return nil, 0, err
	}

	ann := annotation.NewClusteringAnnotation()
	devAnn := linkCtx.DeviceAnnotation()
	applied := 0

	for _, blockID := range device.Clusters.Blocks() {
		block := device.Clusters.Block(blockID)
		g := linkCtx.PbGraph(block.PbType)
		if g == nil {
			return nil, applied, fmt.Errorf("%w: cluster %q instantiates unknown pb-type %q",
				ErrUnboundAtom, block.Name, block.PbType)
		}
		pb := annotation.NewPhysicalPb(blockID)

		constrained, n, err := applyConstraints(device, g, block, dc, pb, log)
		if err != nil {
			return nil, applied, err
		}
		applied += n

		for _, slot := range block.Slots {
			if err := packAtom(device, g, devAnn, slot, constrained, pb, log); err != nil {
				return nil, applied, fmt.Errorf("cluster %q: %w", block.Name, err)
			}
		}
		ann.SetPhysicalPb(pb)
	}
	return ann, applied, nil
}

// applyConstraints resolves and records the constraints whose nets
// live in this cluster. Unknown nets are skipped with a warning, as
// constraints may target nets optimized away upstream.
func applyConstraints(device *vpr.Device, g *arch.PbGraph, block vpr.ClusterBlock,
	dc *DesignConstraints, pb *annotation.PhysicalPb,
	log logging.Logger) (map[vpr.AtomNetID]*arch.PbGraphPin, int, error) {

	constrained := make(map[vpr.AtomNetID]*arch.PbGraphPin)
	if dc.Empty() {
		return constrained, 0, nil
	}

	clusterNets := make(map[vpr.AtomNetID]bool)
	for _, slot := range block.Slots {
		atom := device.Atom.Block(slot.Atom)
		for _, net := range atom.InputNets {
			if net != vpr.InvalidAtomNetID {
				clusterNets[net] = true
			}
		}
		for _, net := range atom.OutputNets {
			if net != vpr.InvalidAtomNetID {
				clusterNets[net] = true
			}
		}
	}

	applied := 0
	for _, rule := range dc.Rules {
		netID, err := device.Atom.NetByName(rule.Net)
		if err != nil {
			log.Warn("design constraint targets unknown net, skipping",
				logging.NetName(rule.Net))
			continue
		}
		if !clusterNets[netID] {
			continue
		}
		node, err := g.NodeByPath(rule.Pb)
		if err != nil {
			return nil, applied, fmt.Errorf("design constraint for net %q: %w", rule.Net, err)
		}
		pin, err := node.Pin(rule.Port, rule.Bit)
		if err != nil {
			return nil, applied, fmt.Errorf("design constraint for net %q: %w", rule.Net, err)
		}
		key := pin.Path()
		if prev, ok := pb.PinNets[key]; ok {
			if prev != netID {
				return nil, applied, fmt.Errorf("%w: pin %s claimed by nets %q and %q",
					ErrConstraintConflict, key,
					device.Atom.Net(prev).Name, rule.Net)
			}
			// duplicate rule, already recorded
			continue
		}
		pb.PinNets[key] = netID
		pb.NetPins[netID] = append(pb.NetPins[netID], pin)
		constrained[netID] = pin
		applied++
		log.Debug("applied design constraint",
			logging.NetName(rule.Net), logging.Path(key))
	}
	return constrained, applied, nil
}

// packAtom lowers one atom onto its physical primitive and binds its
// nets to physical pins, recording the logical-to-physical input pin
// correspondence the truth-table physicalization depends on.
func packAtom(device *vpr.Device, g *arch.PbGraph, devAnn *annotation.DeviceAnnotation,
	slot vpr.AtomSlot, constrained map[vpr.AtomNetID]*arch.PbGraphPin,
	pb *annotation.PhysicalPb, log logging.Logger) error {

	atom := device.Atom.Block(slot.Atom)
	opNode, err := g.NodeByPath(slot.OperatingPb)
	if err != nil {
		return fmt.Errorf("%w: atom %q: %v", ErrUnboundAtom, atom.Name, err)
	}
	physNode := devAnn.PhysicalPbGraphNode(opNode)
	if physNode == nil {
		return fmt.Errorf("%w: atom %q at %s", ErrUnboundAtom, atom.Name, opNode.Path())
	}
	pb.AtomNodes[slot.Atom] = physNode

	mapping := make([]int, len(atom.InputNets))
	for i, net := range atom.InputNets {
		mapping[i] = -1
		if net == vpr.InvalidAtomNetID {
			continue
		}
		opIdx := i
		if slot.PinRotation != nil {
			opIdx = slot.PinRotation[i]
		}
		if opIdx < 0 {
			continue
		}
		physPin := devAnn.PhysicalPin(&opNode.InputPins[opIdx])
		if physPin == nil {
			return fmt.Errorf("%w: atom %q input pin %d unbound", ErrUnboundAtom, atom.Name, i)
		}
		boundPin, err := bindInputPin(device, net, physNode, physPin, constrained, pb)
		if err != nil {
			return fmt.Errorf("atom %q: %w", atom.Name, err)
		}
		mapping[i] = pinPosition(physNode.InputPins, boundPin)
	}
	pb.AtomPinMap[slot.Atom] = mapping

	for j, net := range atom.OutputNets {
		if net == vpr.InvalidAtomNetID {
			continue
		}
		physPin := devAnn.PhysicalPin(&opNode.OutputPins[j])
		if physPin == nil {
			return fmt.Errorf("%w: atom %q output pin %d unbound", ErrUnboundAtom, atom.Name, j)
		}
		key := physPin.Path()
		if prev, ok := pb.PinNets[key]; ok {
			if prev != net {
				return fmt.Errorf("%w: output pin %s claimed by nets %q and %q",
					ErrConstraintConflict, key,
					device.Atom.Net(prev).Name, device.Atom.Net(net).Name)
			}
			continue
		}
		pb.PinNets[key] = net
		pb.NetPins[net] = append(pb.NetPins[net], physPin)
	}

	log.Debug("packed atom onto physical pb",
		logging.BlockName(atom.Name), logging.PbPath(physNode.Path()))
	return nil
}

// bindInputPin resolves where a net lands on the physical node:
// its constrained pin if one applies, its default structural pin when
// free, otherwise the first free input pin of the node.
func bindInputPin(device *vpr.Device, net vpr.AtomNetID, physNode *arch.PbGraphNode,
	defaultPin *arch.PbGraphPin, constrained map[vpr.AtomNetID]*arch.PbGraphPin,
	pb *annotation.PhysicalPb) (*arch.PbGraphPin, error) {

	if pin, ok := constrained[net]; ok {
		// Already recorded during constraint application.
		return pin, nil
	}

	pin := defaultPin
	if holder, ok := pb.PinNets[pin.Path()]; ok && holder != net {
		pin = nil
		for i := range physNode.InputPins {
			candidate := &physNode.InputPins[i]
			if _, taken := pb.PinNets[candidate.Path()]; !taken {
				pin = candidate
				break
			}
		}
		if pin == nil {
			return nil, fmt.Errorf("%w: no free input pin on %s for net %q",
				ErrConstraintConflict, physNode.Path(), device.Atom.Net(net).Name)
		}
	}
	if holder, ok := pb.PinNets[pin.Path()]; !ok || holder != net {
		pb.PinNets[pin.Path()] = net
		pb.NetPins[net] = append(pb.NetPins[net], pin)
	}
	return pin, nil
}

// pinPosition returns the index of pin within pins, or -1.
func pinPosition(pins []arch.PbGraphPin, pin *arch.PbGraphPin) int {
	for i := range pins {
		if &pins[i] == pin {
			return i
		}
	}
	return -1
}
