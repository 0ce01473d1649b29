package metrics

import (
	"time"
)

// RecordPass records one pipeline pass execution with its duration
func (r *Registry) RecordPass(pass, status string, duration time.Duration) {
	r.PassRunsTotal.WithLabelValues(pass, status).Inc()
	r.PassDuration.WithLabelValues(pass).Observe(duration.Seconds())
}

// RecordLinkOutputs records the sizes of the link phase's products
func (r *Registry) RecordLinkOutputs(gsbs, uniqueGSBs, muxEntries, directs, nets int) {
	r.GSBsTotal.Set(float64(gsbs))
	r.UniqueGSBsTotal.Set(float64(uniqueGSBs))
	r.MuxLibraryEntries.Set(float64(muxEntries))
	r.TileDirectsTotal.Set(float64(directs))
	r.AnnotatedNetsTotal.Set(float64(nets))
}

// RecordRepackOutputs records the sizes of the repack phase's products
func (r *Registry) RecordRepackOutputs(blocks, truthTables, constraints int) {
	r.RepackedBlocksTotal.Set(float64(blocks))
	r.PhysicalTruthTablesTotal.Set(float64(truthTables))
	r.ConstraintsApplied.Set(float64(constraints))
}
