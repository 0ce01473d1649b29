package repack

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/metrics"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// Options is the typed configuration of one repack run.
type Options struct {
	// Verbose enables per-atom debug logging
	Verbose bool
	// Constraints are the user pin-assignment rules; nil or empty
	// leaves the default packing heuristic unconstrained
	Constraints *DesignConstraints
	// Logger receives structured logs; nil discards them
	Logger logging.Logger
	// Metrics receives repack instrumentation; nil disables it
	Metrics *metrics.Registry
}

// Run executes the repack phase against a completed link context:
// physical packing first, truth-table physicalization second. On
// failure the link-phase annotations remain valid and reusable; only
// the clustering annotation under construction is discarded. Callers
// surface the returned error as a completion status rather than a
// fatal condition.
func Run(device *vpr.Device, linkCtx *link.Context, opts Options) (*annotation.ClusteringAnnotation, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	if opts.Verbose {
		log.SetLevel(logging.DebugLevel)
	}
	log = log.With(logging.Phase("repack"), logging.RunID(linkCtx.RunID()))

	dc := opts.Constraints
	if dc == nil {
		dc = &DesignConstraints{}
	}

	timer := logging.StartTimer(log, "pack physical pbs", logging.Pass("pack_physical_pbs"))
	ann, applied, err := PackPhysicalPbs(device, linkCtx, dc, log)
	if err != nil {
		timer.EndError(err)
		if opts.Metrics != nil {
			opts.Metrics.RecordPass("pack_physical_pbs", "failure", timer.Elapsed())
		}
		return nil, fmt.Errorf("pack_physical_pbs: %w", err)
	}
	timer.End()
	if opts.Metrics != nil {
		opts.Metrics.RecordPass("pack_physical_pbs", "success", timer.Elapsed())
	}

	timer = logging.StartTimer(log, "build physical truth tables", logging.Pass("build_physical_truth_tables"))
	tables, err := BuildPhysicalLutTruthTables(device, ann, log)
	if err != nil {
		timer.EndError(err)
		if opts.Metrics != nil {
			opts.Metrics.RecordPass("build_physical_truth_tables", "failure", timer.Elapsed())
		}
		return nil, fmt.Errorf("build_physical_truth_tables: %w", err)
	}
	timer.End()
	if opts.Metrics != nil {
		opts.Metrics.RecordPass("build_physical_truth_tables", "success", timer.Elapsed())
		opts.Metrics.RecordRepackOutputs(device.Clusters.NumBlocks(), tables, applied)
	}
	return ann, nil
}
