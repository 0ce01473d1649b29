package link

import (
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// testArchitecture builds a single-CLB architecture: one FLE hosting
// an operating LUT bound to a fracturable physical LUT, plus an io
// primitive, implemented on a five-model circuit library.
func testArchitecture() *arch.Architecture {
	lib := arch.NewCircuitLibrary()
	lib.AddModel(arch.CircuitModel{Name: "sb_mux", Type: arch.ModelMux, Topology: arch.MuxTree})
	lib.AddModel(arch.CircuitModel{Name: "local_mux", Type: arch.ModelMux, Topology: arch.MuxOneLevel})
	lib.AddModel(arch.CircuitModel{Name: "frac_lut4_circuit", Type: arch.ModelLut})
	lib.AddModel(arch.CircuitModel{Name: "io_circuit", Type: arch.ModelIOPad})
	lib.AddModel(arch.CircuitModel{Name: "chan_seg", Type: arch.ModelChanWire})

	lutPorts := []arch.Port{
		{Name: "in", Width: 4, Direction: arch.PortInput},
		{Name: "out", Width: 1, Direction: arch.PortOutput},
	}
	lut4 := &arch.PbType{
		Name: "lut4", Ports: lutPorts, Model: "lut4", Class: arch.ClassLut,
		PhysicalPbTypeName: "frac_lut4",
		ModeBits:           "01",
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
			Interconnects: []arch.Interconnect{{
				Name: "lut_in", Type: arch.InterconnectDirect,
				Inputs: []string{"fle.in"}, Output: "lut4.in",
			}},
		}},
	}
	clb := &arch.PbType{
		Name: "clb",
		Ports: []arch.Port{
			{Name: "I", Width: 4, Direction: arch.PortInput},
			{Name: "O", Width: 1, Direction: arch.PortOutput},
			{Name: "clk", Width: 1, Direction: arch.PortClock},
		},
		Modes: []*arch.Mode{{
			Name:        "default",
			Children:    []*arch.PbType{fle},
			NumChildren: []int{1},
			Interconnects: []arch.Interconnect{{
				Name: "clb_in", Type: arch.InterconnectComplete,
				Inputs: []string{"clb.I"}, Output: "fle.in",
				CircuitModel: "local_mux",
				ModeBits:     "1",
			}},
		}},
	}
	io := &arch.PbType{
		Name:  "io",
		Model: "io", CircuitModel: "io_circuit",
		Ports: []arch.Port{{Name: "pad", Width: 1, Direction: arch.PortInput}},
	}

	return &arch.Architecture{
		PbTypes:              []*arch.PbType{clb, io},
		CircuitLib:           lib,
		SegmentCircuitModels: []string{"chan_seg"},
		SwitchCircuitModels:  []string{"sb_mux"},
		SimSetting: arch.SimulationSetting{
			OperatingClockFrequencyHz: arch.AutoClockFrequency,
			ClockFrequencySlack:       0.2,
			NumClockCycles:            16,
		},
	}
}

// testDeviceNodes names the routing resources testDevice creates.
type testDeviceNodes struct {
	opin vpr.RRNodeID
	inc  vpr.RRNodeID
	dec  vpr.RRNodeID
}

// testDevice builds a placed-and-routed 2x2 device with one switch
// block: an output pin and an incoming track both drive one outgoing
// track, implying a single 2-input switch-block mux. One LUT atom is
// clustered, placed at (1, 1) and drives the routed net.
func testDevice() (*vpr.Device, testDeviceNodes, vpr.ClusterBlockID) {
	grid := vpr.NewDeviceGrid(2, 2)
	grid.SetTile(0, 0, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
	grid.SetTile(0, 1, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
	grid.SetTile(1, 0, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
	grid.SetTile(1, 1, vpr.TileType{Name: "clb", Capacity: 1, Height: 1})

	g := vpr.NewRRGraph(1, 1)
	nodes := testDeviceNodes{}
	nodes.opin = g.AddNode(vpr.RRNode{Type: vpr.RROPin, Side: vpr.SideTop,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 0, SegmentID: -1})
	nodes.inc = g.AddNode(vpr.RRNode{Type: vpr.RRChanY, Direction: vpr.DirInc,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 0, SegmentID: 0})
	nodes.dec = g.AddNode(vpr.RRNode{Type: vpr.RRChanY, Direction: vpr.DirDec,
		XLow: 0, YLow: 1, XHigh: 0, YHigh: 1, Ptc: 1, SegmentID: 0})
	g.AddEdge(nodes.opin, nodes.inc, 0)
	g.AddEdge(nodes.dec, nodes.inc, 0)

	atoms := vpr.NewAtomNetlist()
	nIn := atoms.AddNet("n_in")
	nOut := atoms.AddNet("n_out")
	lut := atoms.AddBlock(vpr.AtomBlock{
		Name:       "lut_a",
		Model:      "lut4",
		InputNets:  []vpr.AtomNetID{nIn, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID},
		OutputNets: []vpr.AtomNetID{nOut},
		TruthTable: &vpr.TruthTable{NumInputs: 4, Lines: []string{"1---1"}},
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

	routing := vpr.NewRouting()
	routing.AddTrace(vpr.NetTrace{Net: nOut, Nodes: []vpr.RRNodeID{nodes.opin, nodes.inc}})

	return &vpr.Device{
		Grid:      grid,
		RRGraph:   g,
		Atom:      atoms,
		Clusters:  clusters,
		Placement: placement,
		Routing:   routing,
		Timing:    vpr.FixedDelayAnalyzer{Delay: 5e-9},
	}, nodes, block
}
