package arch

import (
	"fmt"
)

// Architecture is the parsed architecture description: the logical
// block hierarchy, the circuit library the blocks and routing fabric
// are implemented with, tile-to-tile direct rules, and simulation
// defaults.
type Architecture struct {
	// PbTypes holds one root pb-type per logic tile type
	PbTypes    []*PbType
	CircuitLib *CircuitLibrary
	// SegmentCircuitModels names the chan-wire circuit model for each
	// RR graph segment type, indexed by segment ID
	SegmentCircuitModels []string
	// SwitchCircuitModels names the driving circuit model for each RR
	// graph switch type, indexed by switch ID
	SwitchCircuitModels []string
	Directs              []DirectRule
	SimSetting           SimulationSetting
}

// RootPbType resolves a tile type name to its root pb-type.
func (a *Architecture) RootPbType(name string) (*PbType, error) {
	for _, p := range a.PbTypes {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no root pb-type %q", ErrPbTypeNotFound, name)
}

// FindPbType searches all root hierarchies for a pb-type by name.
func (a *Architecture) FindPbType(name string) (*PbType, error) {
	for _, root := range a.PbTypes {
		if p, err := root.FindPbType(name); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPbTypeNotFound, name)
}
