package arch

import (
	"errors"
	"fmt"
)

// Pb-type sentinel errors
var (
	ErrPbTypeNotFound = errors.New("pb-type not found")
	ErrPortNotFound   = errors.New("port not found")
	ErrNoPhysicalMode = errors.New("no physical mode")
)

// PortDirection tells which way a pb-type port faces.
type PortDirection int

const (
	PortInput PortDirection = iota
	PortOutput
	PortClock
)

// Port is one bus port of a pb-type.
type Port struct {
	Name      string
	Width     int
	Direction PortDirection
}

// InterconnectType classifies a programmable interconnect inside a mode.
type InterconnectType int

const (
	// InterconnectDirect wires one input bus straight to one output bus
	InterconnectDirect InterconnectType = iota
	// InterconnectComplete gives every output full access to every input
	InterconnectComplete
	// InterconnectMux selects one of several input buses per output bit
	InterconnectMux
)

// String returns the string representation of an interconnect type
func (t InterconnectType) String() string {
	switch t {
	case InterconnectDirect:
		return "direct"
	case InterconnectComplete:
		return "complete"
	case InterconnectMux:
		return "mux"
	default:
		return "unknown"
	}
}

// Interconnect is one programmable connection block inside a mode.
// Inputs and Output reference ports by "pbtype.port" strings as the
// architecture file writes them.
type Interconnect struct {
	Name   string
	Type   InterconnectType
	Inputs []string
	Output string
	// CircuitModel names the circuit implementing this interconnect;
	// required for mux and complete crossbars, unused for direct wires
	CircuitModel string
	// ModeBits is the configuration bit string steering this
	// interconnect when its mode is selected
	ModeBits string
}

// Mode is one operating configuration of a multi-mode pb-type.
type Mode struct {
	Name     string
	Children []*PbType
	// NumChildren gives the instance count per child, parallel to Children
	NumChildren   []int
	Interconnects []Interconnect
}

// PbClass marks primitives with special downstream handling.
type PbClass int

const (
	// ClassNone is an ordinary primitive or intermediate pb-type
	ClassNone PbClass = iota
	// ClassLut is a combinational lookup element whose truth table
	// gets physicalized during repack
	ClassLut
	// ClassFlipflop is a sequential element
	ClassFlipflop
	// ClassMemory is a hard memory block
	ClassMemory
)

// PbType is one level of the architecture's logical block hierarchy.
// A primitive pb-type has a BLIF model and no modes; an intermediate
// pb-type has one or more modes, exactly one of which is physical.
type PbType struct {
	Name  string
	Ports []Port
	Modes []*Mode
	// Model is the BLIF model a primitive implements ("lut4", "dff", ...)
	Model string
	Class PbClass
	// PhysicalModeName selects which mode is realized in hardware.
	// Empty means the pb-type has a single mode or is a primitive.
	PhysicalModeName string
	// PhysicalPbTypeName designates the physical implementation of an
	// operating primitive. Empty means the pb-type is physical itself.
	PhysicalPbTypeName string
	// CircuitModel names the circuit implementing a physical primitive
	CircuitModel string
	// ModeBits is the configuration bit string selecting this pb-type's
	// operating behavior on its physical implementation
	ModeBits string
}

// IsPrimitive reports whether the pb-type is a leaf of the hierarchy.
func (p *PbType) IsPrimitive() bool {
	return len(p.Modes) == 0
}

// IsOperating reports whether the pb-type is a logical view bound to
// a different physical implementation.
func (p *PbType) IsOperating() bool {
	return p.PhysicalPbTypeName != ""
}

// PhysicalMode returns the mode realized in hardware. A single-mode
// pb-type's only mode is implicitly physical.
func (p *PbType) PhysicalMode() (*Mode, error) {
	if len(p.Modes) == 0 {
		return nil, fmt.Errorf("%w: %q is a primitive", ErrNoPhysicalMode, p.Name)
	}
	if p.PhysicalModeName == "" {
		if len(p.Modes) == 1 {
			return p.Modes[0], nil
		}
		return nil, fmt.Errorf("%w: %q has %d modes and no physical_mode annotation",
			ErrNoPhysicalMode, p.Name, len(p.Modes))
	}
	for _, m := range p.Modes {
		if m.Name == p.PhysicalModeName {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q names unknown mode %q",
		ErrNoPhysicalMode, p.Name, p.PhysicalModeName)
}

// Port looks up a port by name.
func (p *PbType) Port(name string) (*Port, error) {
	for i := range p.Ports {
		if p.Ports[i].Name == name {
			return &p.Ports[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q has no port %q", ErrPortNotFound, p.Name, name)
}

// Walk visits the pb-type and every descendant across all modes in
// declaration order, calling fn once per pb-type.
func (p *PbType) Walk(fn func(*PbType)) {
	fn(p)
	for _, m := range p.Modes {
		for _, child := range m.Children {
			child.Walk(fn)
		}
	}
}

// FindPbType searches the subtree rooted at p for a pb-type by name.
func (p *PbType) FindPbType(name string) (*PbType, error) {
	var found *PbType
	p.Walk(func(t *PbType) {
		if found == nil && t.Name == name {
			found = t
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q under %q", ErrPbTypeNotFound, name, p.Name)
	}
	return found, nil
}
