// Package annotation holds the derived records the linking pipeline
// attaches to the upstream design database. Each structure is built
// by exactly one pass and read-only for every other pass.
package annotation

import (
	"github.com/TOM-once/OpenFPGA/pkg/arch"
)

// DeviceAnnotation binds the operating view of the architecture to
// its physical implementation: pb-type bindings, per-type-class
// pb-graph-node indices, pin bindings, circuit model references and
// mode-selection bits.
type DeviceAnnotation struct {
	physicalPbType       map[*arch.PbType]*arch.PbType
	pbGraphIndex         map[*arch.PbGraphNode]int
	physicalPbNode       map[*arch.PbGraphNode]*arch.PbGraphNode
	physicalPin          map[*arch.PbGraphPin]*arch.PbGraphPin
	pbCircuitModel       map[*arch.PbType]arch.CircuitModelID
	pbModeBits           map[*arch.PbType]string
	interconnect         map[*arch.Interconnect]arch.CircuitModelID
	interconnectModeBits map[*arch.Interconnect]string
	segmentModels        []arch.CircuitModelID
	switchModels         []arch.CircuitModelID
}

// NewDeviceAnnotation creates an empty device annotation.
func NewDeviceAnnotation() *DeviceAnnotation {
	return &DeviceAnnotation{
		physicalPbType:       make(map[*arch.PbType]*arch.PbType),
		pbGraphIndex:         make(map[*arch.PbGraphNode]int),
		physicalPbNode:       make(map[*arch.PbGraphNode]*arch.PbGraphNode),
		physicalPin:          make(map[*arch.PbGraphPin]*arch.PbGraphPin),
		pbCircuitModel:       make(map[*arch.PbType]arch.CircuitModelID),
		pbModeBits:           make(map[*arch.PbType]string),
		interconnect:         make(map[*arch.Interconnect]arch.CircuitModelID),
		interconnectModeBits: make(map[*arch.Interconnect]string),
	}
}

// SetPhysicalPbType records the physical implementation of an
// operating pb-type. Physical pb-types bind to themselves.
func (a *DeviceAnnotation) SetPhysicalPbType(operating, physical *arch.PbType) {
	a.physicalPbType[operating] = physical
}

// PhysicalPbType returns the physical binding of a pb-type, or nil
// when the binding pass has not resolved it.
func (a *DeviceAnnotation) PhysicalPbType(p *arch.PbType) *arch.PbType {
	return a.physicalPbType[p]
}

// SetPbGraphNodeIndex assigns the per-type-class index of a node.
func (a *DeviceAnnotation) SetPbGraphNodeIndex(node *arch.PbGraphNode, index int) {
	a.pbGraphIndex[node] = index
}

// PbGraphNodeIndex returns the assigned index, or -1 if unassigned.
func (a *DeviceAnnotation) PbGraphNodeIndex(node *arch.PbGraphNode) int {
	idx, ok := a.pbGraphIndex[node]
	if !ok {
		return -1
	}
	return idx
}

// SetPhysicalPbGraphNode binds an operating pb-graph node to its
// physical counterpart.
func (a *DeviceAnnotation) SetPhysicalPbGraphNode(operating, physical *arch.PbGraphNode) {
	a.physicalPbNode[operating] = physical
}

// PhysicalPbGraphNode returns the physical node an operating node is
// bound to, or nil when unbound.
func (a *DeviceAnnotation) PhysicalPbGraphNode(node *arch.PbGraphNode) *arch.PbGraphNode {
	return a.physicalPbNode[node]
}

// SetPhysicalPin binds an operating pin to its physical pin.
func (a *DeviceAnnotation) SetPhysicalPin(operating, physical *arch.PbGraphPin) {
	a.physicalPin[operating] = physical
}

// PhysicalPin returns the physical binding of an operating pin, or
// nil when unbound.
func (a *DeviceAnnotation) PhysicalPin(pin *arch.PbGraphPin) *arch.PbGraphPin {
	return a.physicalPin[pin]
}

// SetPbCircuitModel attaches a circuit model to a physical pb-type.
func (a *DeviceAnnotation) SetPbCircuitModel(p *arch.PbType, model arch.CircuitModelID) {
	a.pbCircuitModel[p] = model
}

// PbCircuitModel returns the circuit model of a pb-type, or
// InvalidCircuitModelID when none is attached.
func (a *DeviceAnnotation) PbCircuitModel(p *arch.PbType) arch.CircuitModelID {
	model, ok := a.pbCircuitModel[p]
	if !ok {
		return arch.InvalidCircuitModelID
	}
	return model
}

// SetPbModeBits records the configuration bits selecting a pb-type's
// operating behavior on its physical implementation.
func (a *DeviceAnnotation) SetPbModeBits(p *arch.PbType, bits string) {
	a.pbModeBits[p] = bits
}

// PbModeBits returns the mode-selection bits of a pb-type, or the
// empty string when none are declared.
func (a *DeviceAnnotation) PbModeBits(p *arch.PbType) string {
	return a.pbModeBits[p]
}

// SetInterconnectCircuitModel attaches a circuit model to a mode
// interconnect.
func (a *DeviceAnnotation) SetInterconnectCircuitModel(ic *arch.Interconnect, model arch.CircuitModelID) {
	a.interconnect[ic] = model
}

// InterconnectCircuitModel returns the circuit model of an
// interconnect, or InvalidCircuitModelID when none is attached.
func (a *DeviceAnnotation) InterconnectCircuitModel(ic *arch.Interconnect) arch.CircuitModelID {
	model, ok := a.interconnect[ic]
	if !ok {
		return arch.InvalidCircuitModelID
	}
	return model
}

// SetInterconnectModeBits records the configuration bits steering a
// mode interconnect.
func (a *DeviceAnnotation) SetInterconnectModeBits(ic *arch.Interconnect, bits string) {
	a.interconnectModeBits[ic] = bits
}

// InterconnectModeBits returns the mode-selection bits of an
// interconnect, or the empty string when none are declared.
func (a *DeviceAnnotation) InterconnectModeBits(ic *arch.Interconnect) string {
	return a.interconnectModeBits[ic]
}

// SetRRSegmentCircuitModels attaches one chan-wire model per RR
// graph segment type.
func (a *DeviceAnnotation) SetRRSegmentCircuitModels(models []arch.CircuitModelID) {
	a.segmentModels = models
}

// RRSegmentCircuitModel returns the chan-wire model of a segment.
func (a *DeviceAnnotation) RRSegmentCircuitModel(segment int) arch.CircuitModelID {
	if segment < 0 || segment >= len(a.segmentModels) {
		return arch.InvalidCircuitModelID
	}
	return a.segmentModels[segment]
}

// SetRRSwitchCircuitModels attaches one driving model per RR graph
// switch type.
func (a *DeviceAnnotation) SetRRSwitchCircuitModels(models []arch.CircuitModelID) {
	a.switchModels = models
}

// RRSwitchCircuitModel returns the driving model of a switch.
func (a *DeviceAnnotation) RRSwitchCircuitModel(sw int) arch.CircuitModelID {
	if sw < 0 || sw >= len(a.switchModels) {
		return arch.InvalidCircuitModelID
	}
	return a.switchModels[sw]
}
