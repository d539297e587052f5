package synth

import (
	"context"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/graph"
)

// State holds the shared results of synthesis phases. It is populated as
// each phase completes.
type State struct {
	// Findings from the validation phase, warnings included.
	Findings []ValidationError

	// Graph is the assembled desired-state graph.
	Graph *graph.Graph

	// Order is the deployment order of Graph's nodes.
	Order []graph.Handle
}

// Context wraps the dependencies and state shared by the phases.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
	// Metrics is optional.
	Metrics MetricsRecorder
}

// NewContext creates a synthesis context with an empty state. cfg must have
// defaults applied.
func NewContext(ctx context.Context, cfg *config.Config, observer Observer) *Context {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    &State{},
		Observer: observer,
	}
}
