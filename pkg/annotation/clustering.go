package annotation

import (
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// PhysicalPb is the post-repack physical realization of one clustered
// block: which physical primitive hosts each atom, and which physical
// pins each net passes through.
type PhysicalPb struct {
	Block vpr.ClusterBlockID
	// AtomNodes maps each atom in the cluster to the physical
	// primitive pb-graph node realizing it
	AtomNodes map[vpr.AtomBlockID]*arch.PbGraphNode
	// NetPins lists the physical pins each net occupies inside this
	// cluster, in binding order
	NetPins map[vpr.AtomNetID][]*arch.PbGraphPin
	// PinNets is the reverse view keyed by physical pin path, used
	// to detect conflicting claims
	PinNets map[string]vpr.AtomNetID
	// AtomPinMap gives, per atom, the physical input pin position
	// each logical input pin landed on; -1 for unconnected inputs
	AtomPinMap map[vpr.AtomBlockID][]int
}

// NewPhysicalPb creates an empty physical realization for a block.
func NewPhysicalPb(block vpr.ClusterBlockID) *PhysicalPb {
	return &PhysicalPb{
		Block:      block,
		AtomNodes:  make(map[vpr.AtomBlockID]*arch.PbGraphNode),
		NetPins:    make(map[vpr.AtomNetID][]*arch.PbGraphPin),
		PinNets:    make(map[string]vpr.AtomNetID),
		AtomPinMap: make(map[vpr.AtomBlockID][]int),
	}
}

// ClusteringAnnotation is the repack engine's output: the physical pb
// realization of every clustered block plus regenerated truth tables
// for combinational lookup elements.
type ClusteringAnnotation struct {
	physicalPbs map[vpr.ClusterBlockID]*PhysicalPb
	truthTables map[vpr.AtomBlockID]*vpr.TruthTable
}

// NewClusteringAnnotation creates an empty clustering annotation.
func NewClusteringAnnotation() *ClusteringAnnotation {
	return &ClusteringAnnotation{
		physicalPbs: make(map[vpr.ClusterBlockID]*PhysicalPb),
		truthTables: make(map[vpr.AtomBlockID]*vpr.TruthTable),
	}
}

// SetPhysicalPb records the physical realization of a block.
func (a *ClusteringAnnotation) SetPhysicalPb(pb *PhysicalPb) {
	a.physicalPbs[pb.Block] = pb
}

// PhysicalPb returns the realization of a block, or nil before repack.
func (a *ClusteringAnnotation) PhysicalPb(block vpr.ClusterBlockID) *PhysicalPb {
	return a.physicalPbs[block]
}

// SetPhysicalTruthTable records the regenerated truth table of a
// lookup element, expressed over physical input pin ordering.
func (a *ClusteringAnnotation) SetPhysicalTruthTable(atom vpr.AtomBlockID, tt *vpr.TruthTable) {
	a.truthTables[atom] = tt
}

// PhysicalTruthTable returns the physical truth table of an atom, or
// nil for non-LUT atoms.
func (a *ClusteringAnnotation) PhysicalTruthTable(atom vpr.AtomBlockID) *vpr.TruthTable {
	return a.truthTables[atom]
}
