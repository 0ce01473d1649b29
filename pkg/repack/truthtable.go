package repack

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// BuildPhysicalLutTruthTables regenerates the truth table of every
// combinational lookup element over its physical input pin ordering.
// The physical table is logically equivalent to the atom table under
// the pin correspondence recorded by PackPhysicalPbs: each logical
// input column moves to its physical pin position, inverted input
// columns flip their care bits, and physical inputs no logical pin
// landed on stay don't-care. Returns the number of regenerated tables.
func BuildPhysicalLutTruthTables(device *vpr.Device, ann *annotation.ClusteringAnnotation,
	log logging.Logger) (int, error) {

	regenerated := 0
	for _, blockID := range device.Clusters.Blocks() {
		block := device.Clusters.Block(blockID)
		pb := ann.PhysicalPb(blockID)
		if pb == nil {
			return regenerated, fmt.Errorf("%w: cluster %q has no physical pb", ErrUnboundAtom, block.Name)
		}
		for _, slot := range block.Slots {
			atom := device.Atom.Block(slot.Atom)
			if atom.TruthTable == nil {
				continue
			}
			physNode := pb.AtomNodes[slot.Atom]
			if physNode == nil {
				return regenerated, fmt.Errorf("%w: atom %q", ErrUnboundAtom, atom.Name)
			}
			physTT, err := physicalizeTruthTable(atom.TruthTable,
				pb.AtomPinMap[slot.Atom], slot.PinInverted, len(physNode.InputPins))
			if err != nil {
				return regenerated, fmt.Errorf("atom %q: %w", atom.Name, err)
			}
			ann.SetPhysicalTruthTable(slot.Atom, physTT)
			regenerated++
			log.Debug("regenerated physical truth table",
				logging.BlockName(atom.Name),
				logging.Int("physical_inputs", physTT.NumInputs),
				logging.Int("lines", len(physTT.Lines)))
		}
	}
	return regenerated, nil
}

// physicalizeTruthTable rewrites one cube cover from logical to
// physical input ordering. mapping[i] gives the physical column of
// logical column i (-1 for unconnected inputs, whose cube characters
// must already be don't-care); inverted[i] flips the care bits of
// logical column i.
func physicalizeTruthTable(tt *vpr.TruthTable, mapping []int, inverted []bool,
	numPhysInputs int) (*vpr.TruthTable, error) {

	if err := tt.Validate(); err != nil {
		return nil, err
	}
	if len(mapping) < tt.NumInputs {
		return nil, fmt.Errorf("pin correspondence covers %d of %d inputs",
			len(mapping), tt.NumInputs)
	}

	phys := &vpr.TruthTable{NumInputs: numPhysInputs}
	for _, line := range tt.Lines {
		cube := make([]byte, numPhysInputs)
		for j := range cube {
			cube[j] = '-'
		}
		for i := 0; i < tt.NumInputs; i++ {
			c := line[i]
			j := mapping[i]
			if j < 0 {
				if c != '-' {
					return nil, fmt.Errorf("unconnected input %d carries care bit %q", i, c)
				}
				continue
			}
			if j >= numPhysInputs {
				return nil, fmt.Errorf("input %d maps to pin %d beyond %d physical inputs",
					i, j, numPhysInputs)
			}
			if i < len(inverted) && inverted[i] {
				switch c {
				case '0':
					c = '1'
				case '1':
					c = '0'
				}
			}
			cube[j] = c
		}
		phys.Lines = append(phys.Lines, string(cube)+string(line[tt.NumInputs]))
	}
	return phys, nil
}
