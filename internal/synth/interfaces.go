package synth

// Phase is one step of synthesis.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the phase, reading and extending ctx.State.
	Run(ctx *Context) error
}

// MetricsRecorder receives synthesis statistics. Implemented by
// internal/metrics.Registry.
type MetricsRecorder interface {
	ObserveFinding(severity string)
	ObservePhase(phase string, seconds float64)
}
