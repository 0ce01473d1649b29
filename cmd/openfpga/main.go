// Command openfpga runs the architecture-linking and repack pipeline
// against a demo design database and exports the resulting
// annotations. It is the boundary host for the core packages: it
// parses flags into typed options, wires the logger and metrics, and
// maps pipeline results onto process exit codes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/archive"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/metrics"
	"github.com/TOM-once/OpenFPGA/pkg/repack"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

func main() {
	var (
		archPath        = flag.String("arch", "", "architecture description file (YAML)")
		constraintsPath = flag.String("design-constraints", "", "repack design constraints file (YAML)")
		archivePath     = flag.String("archive", "", "write annotations to this archive file")
		verbose         = flag.Bool("verbose", false, "enable per-element debug logging")
		logLevel        = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.ParseLevel(*logLevel))
	registry := metrics.NewRegistry()

	if *archPath == "" {
		fmt.Fprintln(os.Stderr, "usage: openfpga -arch <file> [-design-constraints <file>] [-archive <file>]")
		os.Exit(2)
	}

	a, err := arch.LoadArchitecture(*archPath)
	if err != nil {
		logger.Error("failed to load architecture", logging.Error(err))
		os.Exit(2)
	}

	var dc *repack.DesignConstraints
	if *constraintsPath != "" {
		dc, err = repack.LoadDesignConstraints(*constraintsPath)
		if err != nil {
			logger.Error("failed to load design constraints", logging.Error(err))
			os.Exit(2)
		}
	}

	// The upstream place-and-route database is normally handed in by
	// the host flow; this binary links a self-contained demo design
	// so the pipeline can be exercised end to end.
	device := buildDemoDevice(a)

	linkCtx, err := link.Link(device, a, link.Options{
		Verbose: *verbose,
		Logger:  logger,
		Metrics: registry,
	})
	if err != nil {
		logger.Error("link phase failed", logging.Error(err))
		os.Exit(1)
	}

	clusterAnn, err := repack.Run(device, linkCtx, repack.Options{
		Verbose:     *verbose,
		Constraints: dc,
		Logger:      logger,
		Metrics:     registry,
	})
	if err != nil {
		// Repack failure is a completion status, not a crash: the
		// link annotations stay valid for another attempt.
		logger.Error("repack phase failed", logging.Error(err))
		os.Exit(1)
	}

	if *archivePath != "" {
		doc := archive.BuildDocument(device, a, linkCtx, clusterAnn)
		if err := archive.Write(*archivePath, doc); err != nil {
			logger.Error("failed to write archive", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("annotations archived", logging.Path(*archivePath))
	}

	fmt.Printf("link+repack completed: %d GSBs (%d unique), %d mux structures, %d directs\n",
		linkCtx.DeviceRRGSB().NumGSBs(),
		len(linkCtx.DeviceRRGSB().UniqueGSBs()),
		linkCtx.MuxLibrary().NumEntries(),
		linkCtx.TileDirect().NumDirects())
}

// buildDemoDevice assembles a 2x2 device with one switch block, one
// uni-directional channel pair and a single LUT cluster, placed and
// routed by hand.
func buildDemoDevice(a *arch.Architecture) *vpr.Device {
	grid := vpr.NewDeviceGrid(2, 2)
	grid.SetTile(0, 0, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
	grid.SetTile(0, 1, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
	grid.SetTile(1, 0, vpr.TileType{Name: "io", Capacity: 1, Height: 1})
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
	nIn := atoms.AddNet("n_in")
	nOut := atoms.AddNet("n_out")
	lut := atoms.AddBlock(vpr.AtomBlock{
		Name:       "demo_lut",
		Model:      "lut4",
		InputNets:  []vpr.AtomNetID{nIn, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID, vpr.InvalidAtomNetID},
		OutputNets: []vpr.AtomNetID{nOut},
		TruthTable: &vpr.TruthTable{NumInputs: 4, Lines: []string{"1---1"}},
	})

	clusters := vpr.NewClustering()
	block := clusters.AddBlock(vpr.ClusterBlock{
		Name:   "demo_clb",
		PbType: "clb",
		Slots: []vpr.AtomSlot{
			{Atom: lut, OperatingPb: "clb[0].fle[0].lut4[0]"},
		},
	})

	placement := vpr.NewPlacement()
	placement.Place(block, vpr.BlockLocation{X: 1, Y: 1, SubTile: 0})

	routing := vpr.NewRouting()
	routing.AddTrace(vpr.NetTrace{Net: nOut, Nodes: []vpr.RRNodeID{opin, inc}})

	return &vpr.Device{
		Grid:      grid,
		RRGraph:   g,
		Atom:      atoms,
		Clusters:  clusters,
		Placement: placement,
		Routing:   routing,
		Timing:    vpr.FixedDelayAnalyzer{Delay: 5e-9},
	}
}
