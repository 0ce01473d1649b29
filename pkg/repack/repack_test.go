package repack

import (
	"errors"
	"testing"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// testArchitecture mirrors the single-CLB fixture: an operating LUT
// bound to a fracturable physical LUT inside one FLE.
func testArchitecture() *arch.Architecture {
	lib := arch.NewCircuitLibrary()
	lib.AddModel(arch.CircuitModel{Name: "sb_mux", Type: arch.ModelMux, Topology: arch.MuxTree})
	lib.AddModel(arch.CircuitModel{Name: "frac_lut4_circuit", Type: arch.ModelLut})
	lib.AddModel(arch.CircuitModel{Name: "chan_seg", Type: arch.ModelChanWire})

	lutPorts := []arch.Port{
		{Name: "in", Width: 4, Direction: arch.PortInput},
		{Name: "out", Width: 1, Direction: arch.PortOutput},
	}
	lut4 := &arch.PbType{
		Name: "lut4", Ports: lutPorts, Model: "lut4", Class: arch.ClassLut,
		PhysicalPbTypeName: "frac_lut4",
	}
	fracLut4 := &arch.PbType{
		Name: "frac_lut4", Ports: lutPorts, Model: "frac_lut4", Class: arch.ClassLut,
		CircuitModel: "frac_lut4_circuit",
	}
	fle := &arch.PbType{
		Name: "fle",
		Ports: []arch.Port{
			{Name: "in", Width: 4, Direction: arch.PortInput},
			{Name: "out", Width: 1, Direction: arch.PortOutput},
		},
		Modes: []*arch.Mode{{
			Name:        "default",
			Children:    []*arch.PbType{lut4, fracLut4},
			NumChildren: []int{1, 1},
		}},
	}
	clb := &arch.PbType{
		Name: "clb",
		Ports: []arch.Port{
			{Name: "I", Width: 4, Direction: arch.PortInput},
			{Name: "O", Width: 1, Direction: arch.PortOutput},
		},
		Modes: []*arch.Mode{{
			Name:        "default",
			Children:    []*arch.PbType{fle},
			NumChildren: []int{1},
		}},
	}

	return &arch.Architecture{
		PbTypes:              []*arch.PbType{clb},
		CircuitLib:           lib,
		SegmentCircuitModels: []string{"chan_seg"},
		SwitchCircuitModels:  []string{"sb_mux"},
		SimSetting: arch.SimulationSetting{
			OperatingClockFrequencyHz: 100e6,
			NumClockCycles:            8,
		},
	}
}

// testDesign builds a linked device hosting one clustered LUT whose
// first two logical inputs carry nets.
func testDesign(t *testing.T, tt *vpr.TruthTable) (*vpr.Device, *link.Context, vpr.ClusterBlockID, vpr.AtomBlockID) {
	t.Helper()

	grid := vpr.NewDeviceGrid(2, 2)
	grid.SetTile(1, 1, vpr.TileType{Name: "clb", Capacity: 1, Height: 1})

	atoms := vpr.NewAtomNetlist()
	nA := atoms.AddNet("net_a")
	nB := atoms.AddNet("net_b")
	nOut := atoms.AddNet("net_out")
	lut := atoms.AddBlock(vpr.AtomBlock{
		Name:       "lut_a",
		Model:      "lut4",
		InputNets:  []vpr.AtomNetID{nA, nB, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID},
		OutputNets: []vpr.AtomNetID{nOut},
		TruthTable: tt,
	})

	clusters := vpr.NewClustering()
	block := clusters.AddBlock(vpr.ClusterBlock{
		Name:   "clb_a",
		PbType: "clb",
		Slots: []vpr.AtomSlot{
			{Atom: lut, OperatingPb: "clb[0].fle[0].lut4[0]"},
		},
	})

	placement := vpr.NewPlacement()
	placement.Place(block, vpr.BlockLocation{X: 1, Y: 1, SubTile: 0})

	device := &vpr.Device{
		Grid:      grid,
		RRGraph:   vpr.NewRRGraph(1, 1),
		Atom:      atoms,
		Clusters:  clusters,
		Placement: placement,
		Routing:   vpr.NewRouting(),
		Timing:    vpr.FixedDelayAnalyzer{Delay: 1e-9},
	}

	linkCtx, err := link.Link(device, testArchitecture(), link.Options{})
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	return device, linkCtx, block, lut
}

const physLutPin = "clb[0].fle[0].frac_lut4[0].in"

// TestRun_DefaultPacking tests unconstrained packing onto the
// physical primitive
func TestRun_DefaultPacking(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, block, lut := testDesign(t, tt)

	ann, err := Run(device, linkCtx, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	pb := ann.PhysicalPb(block)
	if pb == nil {
		t.Fatal("cluster has no physical pb")
	}
	phys := pb.AtomNodes[lut]
	if phys == nil || phys.Path() != "clb[0].fle[0].frac_lut4[0]" {
		t.Fatalf("atom realized on %v, want frac_lut4[0]", phys)
	}

	nA, _ := device.Atom.NetByName("net_a")
	nB, _ := device.Atom.NetByName("net_b")
	if pb.PinNets[physLutPin+"[0]"] != nA || pb.PinNets[physLutPin+"[1]"] != nB {
		t.Errorf("default packing should use identity pins: %v", pb.PinNets)
	}
	if got := pb.AtomPinMap[lut]; got[0] != 0 || got[1] != 1 || got[2] != -1 || got[3] != -1 {
		t.Errorf("pin correspondence = %v, want [0 1 -1 -1]", got)
	}

	physTT := ann.PhysicalTruthTable(lut)
	if physTT == nil {
		t.Fatal("no physical truth table regenerated")
	}
	if physTT.NumInputs != 4 || len(physTT.Lines) != 1 || physTT.Lines[0] != "10--1" {
		t.Errorf("physical table = %+v, want identity rewrite of 10--1", physTT)
	}
}

// TestRun_ConstraintPinning tests that a pin constraint lands the net
// exactly where it says
func TestRun_ConstraintPinning(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, block, lut := testDesign(t, tt)

	dc := &DesignConstraints{Rules: []PinConstraint{{
		Net: "net_a", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 3,
	}}}

	ann, applied, err := PackPhysicalPbs(device, linkCtx, dc, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("PackPhysicalPbs failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 applied constraint, got %d", applied)
	}

	pb := ann.PhysicalPb(block)
	nA, _ := device.Atom.NetByName("net_a")
	if pb.PinNets[physLutPin+"[3]"] != nA {
		t.Errorf("net_a should sit on in[3]: %v", pb.PinNets)
	}
	if got := pb.AtomPinMap[lut]; got[0] != 3 || got[1] != 1 {
		t.Errorf("pin correspondence = %v, want [3 1 -1 -1]", got)
	}

	// physicalized table follows the constrained pin
	tables, err := BuildPhysicalLutTruthTables(device, ann, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("BuildPhysicalLutTruthTables failed: %v", err)
	}
	if tables != 1 {
		t.Errorf("expected 1 regenerated table, got %d", tables)
	}
	physTT := ann.PhysicalTruthTable(lut)
	if physTT.Lines[0] != "-0-11" {
		t.Errorf("physical line = %q, want -0-11", physTT.Lines[0])
	}
}

// TestRun_ConstraintDisplacesDefault tests that a net evicted from
// its default pin moves to the first free one
func TestRun_ConstraintDisplacesDefault(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, block, lut := testDesign(t, tt)

	// net_b claims in[0], evicting net_a from its default pin
	dc := &DesignConstraints{Rules: []PinConstraint{{
		Net: "net_b", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 0,
	}}}

	ann, _, err := PackPhysicalPbs(device, linkCtx, dc, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("PackPhysicalPbs failed: %v", err)
	}

	pb := ann.PhysicalPb(block)
	nA, _ := device.Atom.NetByName("net_a")
	nB, _ := device.Atom.NetByName("net_b")
	if pb.PinNets[physLutPin+"[0]"] != nB {
		t.Errorf("net_b should hold its constrained pin: %v", pb.PinNets)
	}
	if pb.PinNets[physLutPin+"[1]"] != nA {
		t.Errorf("displaced net_a should take the first free pin: %v", pb.PinNets)
	}
	if got := pb.AtomPinMap[lut]; got[0] != 1 || got[1] != 0 {
		t.Errorf("pin correspondence = %v, want [1 0 -1 -1]", got)
	}
}

// TestPackPhysicalPbs_ConstraintConflict tests rejection of rules
// claiming one pin for two nets
func TestPackPhysicalPbs_ConstraintConflict(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, _, _ := testDesign(t, tt)

	dc := &DesignConstraints{Rules: []PinConstraint{
		{Net: "net_a", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 0},
		{Net: "net_b", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 0},
	}}

	_, _, err := PackPhysicalPbs(device, linkCtx, dc, logging.NewNopLogger())
	if !errors.Is(err, ErrConstraintConflict) {
		t.Fatalf("expected ErrConstraintConflict, got %v", err)
	}
}

// TestPackPhysicalPbs_DuplicateRuleRecordedOnce tests that a repeated
// rule binds its pin a single time
func TestPackPhysicalPbs_DuplicateRuleRecordedOnce(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, block, _ := testDesign(t, tt)

	rule := PinConstraint{Net: "net_a", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 3}
	dc := &DesignConstraints{Rules: []PinConstraint{rule, rule}}

	ann, applied, err := PackPhysicalPbs(device, linkCtx, dc, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("PackPhysicalPbs failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("duplicate rule counted twice: applied = %d", applied)
	}

	pb := ann.PhysicalPb(block)
	nA, _ := device.Atom.NetByName("net_a")
	pins := pb.NetPins[nA]
	if len(pins) != 1 {
		t.Fatalf("net_a bound to %d pins, want 1", len(pins))
	}
	if pins[0].Path() != physLutPin+"[3]" {
		t.Errorf("net_a bound to %s, want %s[3]", pins[0].Path(), physLutPin)
	}
}

// TestPackPhysicalPbs_UnknownNetSkipped tests that constraints on
// vanished nets are tolerated
func TestPackPhysicalPbs_UnknownNetSkipped(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, _, _ := testDesign(t, tt)

	dc := &DesignConstraints{Rules: []PinConstraint{{
		Net: "optimized_away", Pb: "clb[0].fle[0].frac_lut4[0]", Port: "in", Bit: 0,
	}}}

	_, applied, err := PackPhysicalPbs(device, linkCtx, dc, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("unknown net should be skipped, got %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 applied constraints, got %d", applied)
	}
}

// TestPackPhysicalPbs_BadSlotPath tests the unbound atom failure
func TestPackPhysicalPbs_BadSlotPath(t *testing.T) {
	tt := &vpr.TruthTable{NumInputs: 4, Lines: []string{"10--1"}}
	device, linkCtx, _, _ := testDesign(t, tt)
	block := device.Clusters.Block(0)
	block.Slots[0].OperatingPb = "clb[0].fle[9].lut4[0]"

	_, err := Run(device, linkCtx, Options{})
	if !errors.Is(err, ErrUnboundAtom) {
		t.Fatalf("expected ErrUnboundAtom, got %v", err)
	}
}

// TestParseDesignConstraints tests the YAML loader
func TestParseDesignConstraints(t *testing.T) {
	doc := `
constraints:
  - net: net_a
    pb: clb[0].fle[0].frac_lut4[0]
    port: in
    bit: 2
`
	dc, err := ParseDesignConstraints([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDesignConstraints failed: %v", err)
	}
	if len(dc.Rules) != 1 || dc.Rules[0].PinKey() != "clb[0].fle[0].frac_lut4[0].in[2]" {
		t.Errorf("unexpected rules: %+v", dc.Rules)
	}

	conflict := `
constraints:
  - {net: a, pb: p, port: in, bit: 0}
  - {net: b, pb: p, port: in, bit: 0}
`
	if _, err := ParseDesignConstraints([]byte(conflict)); !errors.Is(err, ErrConstraintConflict) {
		t.Errorf("expected ErrConstraintConflict, got %v", err)
	}

	missing := "constraints:\n  - {net: a}\n"
	if _, err := ParseDesignConstraints([]byte(missing)); err == nil {
		t.Error("expected validation error for incomplete rule")
	}
}
