package graph

import (
	"fmt"

	"github.com/imamik/eksstack/internal/errdef"
)

// Builder accumulates declarations for a single graph. It is not safe for
// concurrent use; assembly is single-threaded.
type Builder struct {
	name     string
	nodes    []Node
	byName   map[string]Handle
	edges    []Edge
	edgeSet  map[Edge]struct{}
	rules    []AccessRule
	outputs  []Output
	outNames map[string]struct{}
	finished bool
}

// NewBuilder creates an empty builder for the named stack.
func NewBuilder(stackName string) *Builder {
	return &Builder{
		name: stackName,
		// Index 0 is reserved so the zero Handle never names a node.
		nodes:    []Node{{}},
		byName:   make(map[string]Handle),
		edgeSet:  make(map[Edge]struct{}),
		outNames: make(map[string]struct{}),
	}
}

// Name returns the stack name.
func (b *Builder) Name() string {
	return b.name
}

// AddNode declares a node. Names are unique within the graph. Properties
// that carry invariants are validated immediately.
func (b *Builder) AddNode(name string, props Properties, tags map[string]string) (Handle, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if name == "" {
		return 0, errdef.NewConfiguration("node name is required")
	}
	if props == nil {
		return 0, errdef.NewConfiguration("node %q: properties are required", name)
	}
	if _, exists := b.byName[name]; exists {
		return 0, errdef.NewConfiguration("node %q is already declared", name)
	}
	if v, ok := props.(validatable); ok {
		if err := v.Validate(); err != nil {
			return 0, errdef.NewConfiguration("%s %q: %w", props.Kind(), name, err)
		}
	}

	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, Node{Handle: h, Name: name, Properties: props, Tags: copyTags(tags)})
	b.byName[name] = h
	return h, nil
}

// Reference adds a labelled dependency edge from one node to another.
// Adding the same edge twice is a no-op.
func (b *Builder) Reference(from, to Handle, label string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.checkHandle(from); err != nil {
		return err
	}
	if err := b.checkHandle(to); err != nil {
		return err
	}
	if from == to {
		return errdef.NewConfiguration("node %q cannot depend on itself", b.nodes[from].Name)
	}
	e := Edge{From: from, To: to, Label: label}
	if _, exists := b.edgeSet[e]; exists {
		return nil
	}
	b.edgeSet[e] = struct{}{}
	b.edges = append(b.edges, e)
	return nil
}

// DependsOn adds an explicit ordering dependency.
func (b *Builder) DependsOn(from, to Handle) error {
	return b.Reference(from, to, RefDependsOn)
}

// AddAccessRule declares that traffic from rule.From to rule.To on rule.Port is allowed.
func (b *Builder) AddAccessRule(rule AccessRule) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.checkHandle(rule.From); err != nil {
		return err
	}
	if err := b.checkHandle(rule.To); err != nil {
		return err
	}
	if rule.From == rule.To {
		return errdef.NewConfiguration("access rule on %q cannot target itself", b.nodes[rule.From].Name)
	}
	if rule.Port < 1 || rule.Port > 65535 {
		return errdef.NewConfiguration("access rule %s -> %s: invalid port %d",
			b.nodes[rule.From].Name, b.nodes[rule.To].Name, rule.Port)
	}
	for _, r := range b.rules {
		if r.From == rule.From && r.To == rule.To && r.Port == rule.Port {
			return nil
		}
	}
	b.rules = append(b.rules, rule)
	return nil
}

// AddOutput registers a named output. Every attribute reference must name a
// declared node and an attribute that node's kind exposes.
func (b *Builder) AddOutput(out Output) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if out.Name == "" {
		return errdef.NewConfiguration("output name is required")
	}
	if _, exists := b.outNames[out.Name]; exists {
		return errdef.NewConfiguration("output %q is already registered", out.Name)
	}
	if len(out.Parts) == 0 {
		return errdef.NewConfiguration("output %q has no value", out.Name)
	}
	for _, p := range out.Parts {
		if p.Ref == nil {
			continue
		}
		if err := b.checkHandle(p.Ref.Node); err != nil {
			return fmt.Errorf("output %q: %w", out.Name, err)
		}
		n := b.nodes[p.Ref.Node]
		if !n.Kind().HasAttribute(p.Ref.Attribute) {
			return errdef.NewConfiguration("output %q: %s %q has no attribute %q",
				out.Name, n.Kind(), n.Name, p.Ref.Attribute)
		}
	}
	out.Parts = append([]Part(nil), out.Parts...)
	b.outNames[out.Name] = struct{}{}
	b.outputs = append(b.outputs, out)
	return nil
}

// Lookup returns the handle of a declared node.
func (b *Builder) Lookup(name string) (Handle, bool) {
	h, ok := b.byName[name]
	return h, ok
}

// Node returns a declared node.
func (b *Builder) Node(h Handle) (Node, bool) {
	if !h.Valid() || int(h) >= len(b.nodes) {
		return Node{}, false
	}
	return b.nodes[h], true
}

// Finish validates the declarations and returns the immutable graph. The
// builder cannot be used afterwards.
func (b *Builder) Finish() (*Graph, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	g := &Graph{
		name:    b.name,
		nodes:   b.nodes,
		byName:  b.byName,
		edges:   b.edges,
		rules:   b.rules,
		outputs: b.outputs,
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	order, err := g.topologicalOrder()
	if err != nil {
		return nil, err
	}
	g.order = order
	b.finished = true
	return g, nil
}

func (b *Builder) checkOpen() error {
	if b.finished {
		return errdef.NewConfiguration("graph %q is already finished", b.name)
	}
	return nil
}

func (b *Builder) checkHandle(h Handle) error {
	if !h.Valid() || int(h) >= len(b.nodes) {
		return errdef.NewConfiguration("reference to undeclared node (handle %d)", h)
	}
	return nil
}

func copyTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
