package graph

import (
	"fmt"
	"strings"

	"github.com/imamik/eksstack/internal/errdef"
)

// Attr references an attribute of a node that only becomes known after the
// resolver has created the node.
type Attr struct {
	Node      Handle
	Attribute string
}

// Part is one piece of an output expression: either literal text or an
// attribute reference.
type Part struct {
	Literal string
	Ref     *Attr
}

// Lit returns a literal expression part.
func Lit(s string) Part {
	return Part{Literal: s}
}

// Ref returns an attribute reference expression part.
func Ref(node Handle, attribute string) Part {
	return Part{Ref: &Attr{Node: node, Attribute: attribute}}
}

// Output is a named projection of resolved attributes.
type Output struct {
	Name        string
	Description string
	Parts       []Part
}

// AttributeSource supplies resolved attribute values, keyed by node name.
type AttributeSource interface {
	Attribute(node, attribute string) (string, bool)
}

// Attributes is an in-memory AttributeSource: node name -> attribute -> value.
type Attributes map[string]map[string]string

// Attribute implements AttributeSource.
func (a Attributes) Attribute(node, attribute string) (string, bool) {
	attrs, ok := a[node]
	if !ok {
		return "", false
	}
	v, ok := attrs[attribute]
	return v, ok
}

// Expression renders the output value with unresolved references written as
// ${node.Attribute}.
func (g *Graph) Expression(o Output) string {
	var b strings.Builder
	for _, p := range o.Parts {
		if p.Ref == nil {
			b.WriteString(p.Literal)
			continue
		}
		fmt.Fprintf(&b, "${%s.%s}", g.nodes[p.Ref.Node].Name, p.Ref.Attribute)
	}
	return b.String()
}

// ResolveOutputs evaluates every output against src and returns the flat
// name -> value mapping operators consume. A missing attribute is a
// resolution error.
func (g *Graph) ResolveOutputs(src AttributeSource) (map[string]string, error) {
	values := make(map[string]string, len(g.outputs))
	for _, o := range g.outputs {
		var b strings.Builder
		for _, p := range o.Parts {
			if p.Ref == nil {
				b.WriteString(p.Literal)
				continue
			}
			name := g.nodes[p.Ref.Node].Name
			v, ok := src.Attribute(name, p.Ref.Attribute)
			if !ok {
				return nil, errdef.NewResolution("output %s: attribute %s.%s has not been resolved", o.Name, name, p.Ref.Attribute)
			}
			b.WriteString(v)
		}
		values[o.Name] = b.String()
	}
	return values, nil
}

// UnresolvedOutputs returns every output rendered as an expression.
func (g *Graph) UnresolvedOutputs() map[string]string {
	values := make(map[string]string, len(g.outputs))
	for _, o := range g.outputs {
		values[o.Name] = g.Expression(o)
	}
	return values
}
