package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the linking and repack pipeline
type Registry struct {
	registry *prometheus.Registry

	// Pass Metrics
	PassRunsTotal *prometheus.CounterVec
	PassDuration  *prometheus.HistogramVec

	// Link-Phase Output Metrics
	GSBsTotal          prometheus.Gauge
	UniqueGSBsTotal    prometheus.Gauge
	MuxLibraryEntries  prometheus.Gauge
	TileDirectsTotal   prometheus.Gauge
	AnnotatedNetsTotal prometheus.Gauge

	// Repack Metrics
	RepackedBlocksTotal      prometheus.Gauge
	PhysicalTruthTablesTotal prometheus.Gauge
	ConstraintsApplied       prometheus.Gauge
}

// NewRegistry creates a registry with all pipeline metrics registered
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.PassRunsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "openfpga_pass_runs_total",
			Help: "Total number of pipeline pass executions",
		},
		[]string{"pass", "status"},
	)
	r.PassDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openfpga_pass_duration_seconds",
			Help:    "Pipeline pass duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"pass"},
	)

	r.GSBsTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_gsbs_total",
			Help: "Total number of general switch blocks on the device",
		},
	)
	r.UniqueGSBsTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_unique_gsbs_total",
			Help: "Number of structurally unique general switch blocks",
		},
	)
	r.MuxLibraryEntries = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_mux_library_entries",
			Help: "Number of deduplicated multiplexer structures",
		},
	)
	r.TileDirectsTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_tile_directs_total",
			Help: "Number of resolved tile-to-tile direct connections",
		},
	)
	r.AnnotatedNetsTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_annotated_nets_total",
			Help: "Number of routed nets bound to routing resource nodes",
		},
	)

	r.RepackedBlocksTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_repacked_blocks_total",
			Help: "Number of clustered blocks with a physical pb realization",
		},
	)
	r.PhysicalTruthTablesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_physical_truth_tables_total",
			Help: "Number of regenerated physical LUT truth tables",
		},
	)
	r.ConstraintsApplied = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "openfpga_repack_constraints_applied",
			Help: "Number of design constraints honored during repack",
		},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
