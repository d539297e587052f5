package synth

import (
	"errors"
)

// OrderingPhase computes the deployment order of the assembled graph.
type OrderingPhase struct{}

// NewOrderingPhase creates a new ordering phase.
func NewOrderingPhase() *OrderingPhase {
	return &OrderingPhase{}
}

// Name implements the Phase interface.
func (op *OrderingPhase) Name() string {
	return "ordering"
}

// Run implements the Phase interface.
func (op *OrderingPhase) Run(ctx *Context) error {
	g := ctx.State.Graph
	if g == nil {
		return errors.New("no graph to order; the assembly phase must run first")
	}
	ctx.State.Order = g.Order()

	if len(ctx.State.Order) > 0 {
		first := g.MustNode(ctx.State.Order[0])
		last := g.MustNode(ctx.State.Order[len(ctx.State.Order)-1])
		ctx.Observer.Printf("Deployment order: %d resources, from %s to %s", len(ctx.State.Order), first.Name, last.Name)
	}
	return nil
}
