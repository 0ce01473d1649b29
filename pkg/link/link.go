// Package link implements the architecture-linking phase: the
// ordered sequence of annotation and grouping passes that bind an
// architecture description to a placed-and-routed design database.
// The phase consumes the upstream database read-only and owns every
// structure it derives.
package link

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/gsb"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/tiledirect"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// Link runs the link phase: compatibility check first, then the
// annotation and builder passes in dependency order. On any failure
// it returns a nil context so no partial annotation escapes; the
// only recovery is a fresh run.
func Link(device *vpr.Device, a *arch.Architecture, opts Options) (*Context, error) {
	opts = opts.normalize()

	ctx := &Context{
		runID:      uuid.NewString(),
		simSetting: a.SimSetting,
	}
	log := opts.Logger.With(logging.Phase("link"), logging.RunID(ctx.runID))

	run := func(pass string, fn func(logging.Logger) error) error {
		timer := logging.StartTimer(log, pass, logging.Pass(pass))
		err := fn(log.With(logging.Pass(pass)))
		if err != nil {
			timer.EndError(err)
			if opts.Metrics != nil {
				opts.Metrics.RecordPass(pass, "failure", timer.Elapsed())
			}
			return fmt.Errorf("%s: %w", pass, err)
		}
		timer.End()
		if opts.Metrics != nil {
			opts.Metrics.RecordPass(pass, "success", timer.Elapsed())
		}
		return nil
	}

	// The GSB and mux-library builders assume uni-directional
	// routing, so an incompatible graph rejects the whole phase
	// before any annotation is built.
	if err := run("check_rr_graph", func(logging.Logger) error {
		return checkRRGraph(device.RRGraph)
	}); err != nil {
		return nil, err
	}

	ctx.deviceAnnotation = annotation.NewDeviceAnnotation()
	if err := run("annotate_pb_types", func(l logging.Logger) error {
		return annotatePbTypes(a, ctx.deviceAnnotation, l)
	}); err != nil {
		return nil, err
	}

	if err := run("annotate_pb_graph", func(l logging.Logger) error {
		graphs, err := annotatePbGraph(a, ctx.deviceAnnotation, l)
		ctx.pbGraphs = graphs
		return err
	}); err != nil {
		return nil, err
	}

	if err := run("annotate_rr_graph_circuit_models", func(l logging.Logger) error {
		return annotateRRGraphCircuitModels(device.RRGraph, a, ctx.deviceAnnotation, l)
	}); err != nil {
		return nil, err
	}

	ctx.routingAnnotation = annotation.NewRoutingAnnotation(device.RRGraph)
	var annotatedNets int
	if err := run("annotate_rr_node_nets", func(l logging.Logger) error {
		n, err := annotateRRNodeNets(device, ctx.routingAnnotation, l)
		annotatedNets = n
		return err
	}); err != nil {
		return nil, err
	}

	if err := run("build_device_rr_gsb", func(l logging.Logger) error {
		ctx.deviceRRGSB = gsb.Build(device.Grid, device.RRGraph)
		l.Debug("grouped switch blocks",
			logging.Int("gsbs", ctx.deviceRRGSB.NumGSBs()),
			logging.Int("unique", len(ctx.deviceRRGSB.UniqueGSBs())))
		return nil
	}); err != nil {
		return nil, err
	}

	if err := run("build_mux_library", func(logging.Logger) error {
		lib, err := buildMuxLibrary(device.RRGraph, a, ctx.deviceAnnotation, ctx.deviceRRGSB)
		ctx.muxLibrary = lib
		return err
	}); err != nil {
		return nil, err
	}

	if err := run("build_tile_direct", func(logging.Logger) error {
		td, err := tiledirect.Build(device.Grid, a.Directs)
		ctx.tileDirect = td
		return err
	}); err != nil {
		return nil, err
	}

	ctx.placementAnnotation = annotation.NewPlacementAnnotation()
	if err := run("annotate_placement", func(l logging.Logger) error {
		return annotateMappedBlocks(device, ctx.placementAnnotation, l)
	}); err != nil {
		return nil, err
	}

	if err := run("annotate_simulation_setting", func(l logging.Logger) error {
		return annotateSimulationSetting(device.Timing, &ctx.simSetting, l)
	}); err != nil {
		return nil, err
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordLinkOutputs(
			ctx.deviceRRGSB.NumGSBs(),
			len(ctx.deviceRRGSB.UniqueGSBs()),
			ctx.muxLibrary.NumEntries(),
			ctx.tileDirect.NumDirects(),
			annotatedNets,
		)
	}
	return ctx, nil
}
