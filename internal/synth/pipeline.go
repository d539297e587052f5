package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/eksstack/internal/config"
)

// DefaultPhases returns the phases of a full synthesis.
func DefaultPhases() []Phase {
	return []Phase{
		NewValidationPhase(),
		NewAssemblyPhase(),
		NewOrderingPhase(),
	}
}

// RunPhases executes the phases sequentially and stops at the first error
// or when the context is canceled.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting synthesis of %s with %d phases", ctx.Config.StackName, len(phases))

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("synthesis canceled before %s phase: %w", phase.Name(), err)
		}

		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))
		LogPhaseStart(ctx.Observer, name)

		err := phase.Run(ctx)
		if ctx.Metrics != nil {
			ctx.Metrics.ObservePhase(phase.Name(), time.Since(phaseStart).Seconds())
		}
		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Synthesis completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Synthesize runs the default pipeline for cfg and returns the final state.
func Synthesize(ctx context.Context, cfg *config.Config, observer Observer, metrics MetricsRecorder) (*State, error) {
	sctx := NewContext(ctx, cfg, observer)
	sctx.Metrics = metrics
	if err := RunPhases(sctx, DefaultPhases()); err != nil {
		return sctx.State, err
	}
	return sctx.State, nil
}
