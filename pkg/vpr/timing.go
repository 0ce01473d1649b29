package vpr

// TimingAnalyzer exposes the one timing result the linking pipeline
// consumes. The upstream engine owns the analysis itself; the
// pipeline treats it as a synchronous black box.
type TimingAnalyzer interface {
	// LeastSlackCriticalPathDelay loads net delays from the current
	// routing solution and returns the delay, in seconds, of the
	// setup-critical path with the least slack.
	LeastSlackCriticalPathDelay() (float64, error)
}

// FixedDelayAnalyzer is a TimingAnalyzer returning a precomputed
// delay. Upstream adapters and tests use it when the full analysis
// has already run.
type FixedDelayAnalyzer struct {
	Delay float64
	Err   error
}

// LeastSlackCriticalPathDelay returns the precomputed delay.
func (a FixedDelayAnalyzer) LeastSlackCriticalPathDelay() (float64, error) {
	return a.Delay, a.Err
}
