package arch

// AutoClockFrequency is the sentinel requesting that the operating
// clock frequency be derived from the routed design's timing results.
const AutoClockFrequency = 0.0

// SimulationSetting carries the testbench parameters downstream
// simulation generators consume. The simulation-setting annotator is
// the only pass allowed to mutate it.
type SimulationSetting struct {
	// OperatingClockFrequencyHz is the clock the fabric runs at.
	// AutoClockFrequency asks the link phase to derive it from the
	// least-slack critical path.
	OperatingClockFrequencyHz float64
	// ClockFrequencySlack is the fractional margin added to the
	// critical-path delay before taking its reciprocal
	ClockFrequencySlack float64
	// NumClockCycles is the simulation length; 0 lets the simulator
	// infer it from signal activity
	NumClockCycles int
}
