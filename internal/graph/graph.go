package graph

import "sort"

// Handle addresses a node in the graph arena. The zero handle is never
// assigned and stands for "no node".
type Handle int

// Valid returns true if h may refer to a node.
func (h Handle) Valid() bool {
	return h > 0
}

// Node is a declared resource.
type Node struct {
	Handle     Handle
	Name       string
	Properties Properties
	Tags       map[string]string
}

// Kind returns the node's resource kind.
func (n Node) Kind() Kind {
	if n.Properties == nil {
		return ""
	}
	return n.Properties.Kind()
}

// Edge is a dependency: From requires To to exist. Label names the role the
// target plays for the source (see the Ref* constants).
type Edge struct {
	From  Handle
	To    Handle
	Label string
}

// AccessRule permits traffic from one resource to another on a TCP port.
// Anything not covered by a rule is denied.
type AccessRule struct {
	From        Handle
	To          Handle
	Port        int
	Description string
}

// Graph is a validated, immutable desired-state graph.
type Graph struct {
	name    string
	nodes   []Node
	byName  map[string]Handle
	edges   []Edge
	rules   []AccessRule
	outputs []Output
	order   []Handle
}

// Name returns the stack name the graph was built for.
func (g *Graph) Name() string {
	return g.name
}

// Len returns the number of declared nodes.
func (g *Graph) Len() int {
	return len(g.nodes) - 1
}

// Node returns the node addressed by h.
func (g *Graph) Node(h Handle) (Node, bool) {
	if !h.Valid() || int(h) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[h], true
}

// Lookup returns the handle of the node with the given name.
func (g *Graph) Lookup(name string) (Handle, bool) {
	h, ok := g.byName[name]
	return h, ok
}

// MustNode returns the node addressed by h and panics if there is none.
// Only use it with handles obtained from this graph.
func (g *Graph) MustNode(h Handle) Node {
	n, ok := g.Node(h)
	if !ok {
		panic("graph: unknown handle")
	}
	return n
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes[1:]...)
}

// NodesOfKind returns all nodes of kind k in declaration order.
func (g *Graph) NodesOfKind(k Kind) []Node {
	var out []Node
	for _, n := range g.nodes[1:] {
		if n.Kind() == k {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns all dependency edges in declaration order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// References returns the targets of h's edges carrying label, in declaration order.
// An empty label matches every edge.
func (g *Graph) References(h Handle, label string) []Handle {
	var out []Handle
	for _, e := range g.edges {
		if e.From == h && (label == "" || e.Label == label) {
			out = append(out, e.To)
		}
	}
	return out
}

// Dependents returns the sources of edges pointing at h, sorted by handle.
func (g *Graph) Dependents(h Handle) []Handle {
	seen := make(map[Handle]bool)
	var out []Handle
	for _, e := range g.edges {
		if e.To == h && !seen[e.From] {
			seen[e.From] = true
			out = append(out, e.From)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AccessRules returns all declared access rules.
func (g *Graph) AccessRules() []AccessRule {
	return append([]AccessRule(nil), g.rules...)
}

// Permits reports whether traffic from one node to another on port is allowed.
func (g *Graph) Permits(from, to Handle, port int) bool {
	for _, r := range g.rules {
		if r.From == from && r.To == to && r.Port == port {
			return true
		}
	}
	return false
}

// Bindings returns the identity bindings declared for cluster.
func (g *Graph) Bindings(cluster Handle) []Node {
	var out []Node
	for _, n := range g.NodesOfKind(KindIdentityBinding) {
		for _, target := range g.References(n.Handle, RefCluster) {
			if target == cluster {
				out = append(out, n)
			}
		}
	}
	return out
}

// Outputs returns the registered outputs in registration order.
func (g *Graph) Outputs() []Output {
	return append([]Output(nil), g.outputs...)
}

// Order returns the node handles in deployment order: every node appears
// after all of its dependencies. Ties are broken by declaration order, so
// the result is deterministic.
func (g *Graph) Order() []Handle {
	return append([]Handle(nil), g.order...)
}
