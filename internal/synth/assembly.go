package synth

import (
	"github.com/imamik/eksstack/internal/stack"
)

// AssemblyPhase declares the stack graph.
type AssemblyPhase struct{}

// NewAssemblyPhase creates a new assembly phase.
func NewAssemblyPhase() *AssemblyPhase {
	return &AssemblyPhase{}
}

// Name implements the Phase interface.
func (ap *AssemblyPhase) Name() string {
	return "assembly"
}

// Run implements the Phase interface.
func (ap *AssemblyPhase) Run(ctx *Context) error {
	g, err := stack.Assemble(ctx.Config)
	if err != nil {
		return err
	}
	ctx.State.Graph = g

	obs := ctx.Observer.WithFields(map[string]string{"stack": g.Name()})
	for _, n := range g.Nodes() {
		LogResourceDeclared(obs, ap.Name(), string(n.Kind()), n.Name)
	}
	ctx.Observer.Printf("Declared %d resources, %d access rules and %d outputs",
		g.Len(), len(g.AccessRules()), len(g.Outputs()))
	return nil
}
