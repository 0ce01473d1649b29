package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/repack"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// exportFixture links and repacks a one-LUT design whose single
// routed net crosses one switch block.
func exportFixture(t *testing.T) (*vpr.Device, *arch.Architecture, *link.Context, *Document) {
	t.Helper()

	lib := arch.NewCircuitLibrary()
	lib.AddModel(arch.CircuitModel{Name: "sb_mux", Type: arch.ModelMux, Topology: arch.MuxTree})
	lib.AddModel(arch.CircuitModel{Name: "lut4_circuit", Type: arch.ModelLut})
	lib.AddModel(arch.CircuitModel{Name: "chan_seg", Type: arch.ModelChanWire})

	clb := &arch.PbType{
		Name: "clb", Model: "lut4", Class: arch.ClassLut,
		CircuitModel: "lut4_circuit",
		Ports: []arch.Port{
			{Name: "in", Width: 4, Direction: arch.PortInput},
			{Name: "out", Width: 1, Direction: arch.PortOutput},
		},
	}
	a := &arch.Architecture{
		PbTypes:              []*arch.PbType{clb},
		CircuitLib:           lib,
		SegmentCircuitModels: []string{"chan_seg"},
		SwitchCircuitModels:  []string{"sb_mux"},
		SimSetting: arch.SimulationSetting{
			OperatingClockFrequencyHz: arch.AutoClockFrequency,
			ClockFrequencySlack:       0.0,
			NumClockCycles:            8,
		},
	}

	grid := vpr.NewDeviceGrid(2, 2)
	grid.SetTile(1, 1, vpr.TileType{Name: "clb", Capacity: 1, Height: 1})

	g := vpr.NewRRGraph(1, 1)
	opin := g.AddNode(vpr.RRNode{Type: vpr.RROPin, Side: vpr.SideTop,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 0, SegmentID: -1})
	inc := g.AddNode(vpr.RRNode{Type: vpr.RRChanY, Direction: vpr.DirInc,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 0, SegmentID: 0})
	dec := g.AddNode(vpr.RRNode{Type: vpr.RRChanY, Direction: vpr.DirDec,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 1, SegmentID: 0})
	g.AddEdge(opin, inc, 0)
	g.AddEdge(dec, inc, 0)

	atoms := vpr.NewAtomNetlist()
	nOut := atoms.AddNet("net_out")
	lut := atoms.AddBlock(vpr.AtomBlock{
		Name:       "lut_a",
		Model:      "lut4",
		InputNets:  []vpr.AtomNetID{vpr.InvalidAtomNetID, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID},
		OutputNets: []vpr.AtomNetID{nOut},
		TruthTable: &vpr.TruthTable{NumInputs: 4, Lines: []string{"----1"}},
	})

	clusters := vpr.NewClustering()
	block := clusters.AddBlock(vpr.ClusterBlock{
		Name:   "clb_a",
		PbType: "clb",
		Slots:  []vpr.AtomSlot{{Atom: lut, OperatingPb: "clb[0]"}},
	})

	placement := vpr.NewPlacement()
	placement.Place(block, vpr.BlockLocation{X: 1, Y: 1, SubTile: 0})

	routing := vpr.NewRouting()
	routing.AddTrace(vpr.NetTrace{Net: nOut, Nodes: []vpr.RRNodeID{opin, inc}})

	device := &vpr.Device{
		Grid:      grid,
		RRGraph:   g,
		Atom:      atoms,
		Clusters:  clusters,
		Placement: placement,
		Routing:   routing,
		Timing:    vpr.FixedDelayAnalyzer{Delay: 2e-9},
	}

	linkCtx, err := link.Link(device, a, link.Options{})
	require.NoError(t, err)

	clusterAnn, err := repack.Run(device, linkCtx, repack.Options{})
	require.NoError(t, err)

	return device, a, linkCtx, BuildDocument(device, a, linkCtx, clusterAnn)
}

// TestBuildDocument tests flattening a completed run
func TestBuildDocument(t *testing.T) {
	_, _, linkCtx, doc := exportFixture(t)

	assert.Equal(t, linkCtx.RunID(), doc.RunID)
	assert.Equal(t, 1, doc.NumGSBs)
	assert.Equal(t, 1, doc.NumUniqueGSBs)

	require.Len(t, doc.MuxEntries, 1)
	assert.Equal(t, "sb_mux", doc.MuxEntries[0].Model)
	assert.Equal(t, 2, doc.MuxEntries[0].Size)
	assert.Equal(t, "tree", doc.MuxEntries[0].Topology)

	assert.Empty(t, doc.Directs)
	assert.Equal(t, Location{X: 1, Y: 1, SubTile: 0}, doc.Placement["clb_a"])
	assert.Equal(t, []int{0, 1}, doc.NetNodes["net_out"])
	assert.Equal(t, []string{"----1"}, doc.TruthTables["lut_a"])
	assert.InDelta(t, 1.0/2e-9, doc.OperatingClockFrequencyHz, 1)
	assert.Equal(t, 8, doc.NumClockCycles)
}

// TestBuildDocument_RoundTripsThroughArchive tests export to disk and
// back
func TestBuildDocument_RoundTripsThroughArchive(t *testing.T) {
	_, _, _, doc := exportFixture(t)

	path := t.TempDir() + "/run.ofpa"
	require.NoError(t, Write(path, doc))
	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
