package link

import (
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/metrics"
)

// Options is the typed configuration of one link run. Every
// recognized knob is a field here; the pipeline never looks options
// up by name.
type Options struct {
	// Verbose enables per-element debug logging in every pass
	Verbose bool
	// Logger receives structured pass logs; nil discards them
	Logger logging.Logger
	// Metrics receives pass instrumentation; nil disables it
	Metrics *metrics.Registry
}

// normalize fills nil collaborators with no-op implementations.
func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
	if o.Verbose {
		o.Logger.SetLevel(logging.DebugLevel)
	}
	return o
}
