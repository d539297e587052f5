package graph

import (
	"errors"
	"fmt"

	dgraph "github.com/dominikbraun/graph"

	"github.com/imamik/eksstack/internal/errdef"
)

// validate checks the graph invariants that span more than one node.
func (g *Graph) validate() error {
	var errs []error

	if err := g.validateEndpoints(); err != nil {
		return err
	}

	errs = append(errs, g.validateSubnetExposure()...)
	errs = append(errs, g.validateCredentials()...)
	errs = append(errs, g.validateBindings()...)

	if _, err := g.dependencyGraph(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateEndpoints ensures no edge, access rule or output dangles.
func (g *Graph) validateEndpoints() error {
	known := func(h Handle) bool { return h.Valid() && int(h) < len(g.nodes) }

	for _, e := range g.edges {
		if !known(e.From) || !known(e.To) {
			return errdef.NewConfiguration("edge %d -> %d references an undeclared node", e.From, e.To)
		}
	}
	for _, r := range g.rules {
		if !known(r.From) || !known(r.To) {
			return errdef.NewConfiguration("access rule %d -> %d references an undeclared node", r.From, r.To)
		}
	}
	for _, o := range g.outputs {
		for _, p := range o.Parts {
			if p.Ref != nil && !known(p.Ref.Node) {
				return errdef.NewConfiguration("output %q references an undeclared node", o.Name)
			}
		}
	}
	return nil
}

// validateSubnetExposure checks that subnet edges point at subnets and that
// internal-only resources select private subnets only.
func (g *Graph) validateSubnetExposure() []error {
	var errs []error
	for _, e := range g.edges {
		if e.Label != RefSubnet {
			continue
		}
		src, dst := g.nodes[e.From], g.nodes[e.To]
		subnet, ok := dst.Properties.(SubnetProperties)
		if !ok {
			errs = append(errs, errdef.NewConfiguration("%s %q selects %s %q as a subnet", src.Kind(), src.Name, dst.Kind(), dst.Name))
			continue
		}
		if src.Kind().requiresPrivateSubnets() && subnet.Exposure != ExposurePrivate {
			errs = append(errs, errdef.NewConfiguration("%s %q must use private subnets, got %s subnet %q",
				src.Kind(), src.Name, subnet.Exposure, dst.Name))
		}
	}
	return errs
}

// validateCredentials checks every database references exactly one generated secret.
func (g *Graph) validateCredentials() []error {
	var errs []error
	for _, db := range g.NodesOfKind(KindDatabase) {
		refs := g.References(db.Handle, RefCredentials)
		if len(refs) != 1 {
			errs = append(errs, errdef.NewConfiguration("database %q must reference exactly one credential secret, got %d", db.Name, len(refs)))
			continue
		}
		if secret := g.nodes[refs[0]]; secret.Kind() != KindSecret {
			errs = append(errs, errdef.NewConfiguration("database %q credentials reference %s %q, not a secret", db.Name, secret.Kind(), secret.Name))
		}
	}
	return errs
}

// validateBindings checks each binding targets one cluster and no identity
// is bound twice to the same cluster.
func (g *Graph) validateBindings() []error {
	var errs []error
	seen := make(map[Handle]map[string]string)
	for _, b := range g.NodesOfKind(KindIdentityBinding) {
		clusters := g.References(b.Handle, RefCluster)
		if len(clusters) != 1 || g.nodes[clusters[0]].Kind() != KindCluster {
			errs = append(errs, errdef.NewConfiguration("identity binding %q must reference exactly one cluster", b.Name))
			continue
		}
		identity := b.Properties.(IdentityBindingProperties).Identity
		if seen[clusters[0]] == nil {
			seen[clusters[0]] = make(map[string]string)
		}
		if prev, dup := seen[clusters[0]][identity]; dup {
			errs = append(errs, errdef.NewConfiguration("identity %s is bound twice (%q and %q)", identity, prev, b.Name))
			continue
		}
		seen[clusters[0]][identity] = b.Name
	}
	return errs
}

// dependencyGraph builds the dependency DAG. Edges point from dependency to
// dependent so that a topological sort yields creation order.
func (g *Graph) dependencyGraph() (dgraph.Graph[Handle, Handle], error) {
	dag := dgraph.New(func(h Handle) Handle { return h }, dgraph.Directed(), dgraph.PreventCycles())

	for _, n := range g.nodes[1:] {
		if err := dag.AddVertex(n.Handle); err != nil {
			return nil, fmt.Errorf("failed adding vertex for %q: %w", n.Name, err)
		}
	}

	for _, e := range g.edges {
		err := dag.AddEdge(e.To, e.From)
		if err == nil || errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			continue
		}
		if errors.Is(err, dgraph.ErrEdgeCreatesCycle) {
			return nil, errdef.NewConfiguration("dependency of %q on %q creates a cycle", g.nodes[e.From].Name, g.nodes[e.To].Name)
		}
		return nil, fmt.Errorf("failed adding edge from %q to %q: %w", g.nodes[e.From].Name, g.nodes[e.To].Name, err)
	}

	return dag, nil
}

// topologicalOrder returns a deterministic creation order.
func (g *Graph) topologicalOrder() ([]Handle, error) {
	dag, err := g.dependencyGraph()
	if err != nil {
		return nil, err
	}
	order, err := dgraph.StableTopologicalSort(dag, func(a, b Handle) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("failed to order graph: %w", err)
	}
	return order, nil
}
