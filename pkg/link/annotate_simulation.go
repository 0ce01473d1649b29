package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// annotateSimulationSetting derives the operating clock frequency
// from the routed design's timing when the architecture requests it.
// The sentinel frequency 0 asks for the least-slack critical-path
// delay, widened by the configured slack fraction, inverted into a
// frequency. A preconfigured frequency is left untouched.
func annotateSimulationSetting(timing vpr.TimingAnalyzer, setting *arch.SimulationSetting, log logging.Logger) error {
	if setting.OperatingClockFrequencyHz != arch.AutoClockFrequency {
		log.Info("applying configured operating clock frequency",
			logging.Float64("frequency_mhz", setting.OperatingClockFrequencyHz/1e6))
		return nil
	}

	delay, err := timing.LeastSlackCriticalPathDelay()
	if err != nil {
		return fmt.Errorf("timing analysis failed: %w", err)
	}
	if delay <= 0 {
		return fmt.Errorf("timing analysis returned non-positive critical path delay %g", delay)
	}

	tCrit := delay * (1.0 + setting.ClockFrequencySlack)
	setting.OperatingClockFrequencyHz = 1.0 / tCrit
	log.Info("derived operating clock frequency from critical path",
		logging.Float64("critical_path_ns", tCrit*1e9),
		logging.Float64("slack_fraction", setting.ClockFrequencySlack),
		logging.Float64("frequency_mhz", setting.OperatingClockFrequencyHz/1e6))
	return nil
}
