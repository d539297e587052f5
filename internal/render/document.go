package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"

	"github.com/imamik/eksstack/internal/graph"
)

// APIVersion identifies the document schema.
const APIVersion = "eksstack.io/v1"

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected yaml or json)", s)
	}
}

// Document is the synthesized form of a graph.
type Document struct {
	APIVersion  string       `yaml:"api_version" json:"api_version"`
	Stack       string       `yaml:"stack" json:"stack"`
	Resources   []Resource   `yaml:"resources" json:"resources"`
	AccessRules []AccessRule `yaml:"access_rules,omitempty" json:"access_rules,omitempty"`
	Outputs     []Output     `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// Resource is one node of the graph.
type Resource struct {
	Name       string            `yaml:"name" json:"name"`
	Kind       string            `yaml:"kind" json:"kind"`
	Properties map[string]any    `yaml:"properties" json:"properties"`
	DependsOn  []Dependency      `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Tags       map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Dependency is an outgoing edge of a resource.
type Dependency struct {
	Target string `yaml:"target" json:"target"`
	Label  string `yaml:"label" json:"label"`
}

// AccessRule permits traffic between two resources, by name.
type AccessRule struct {
	From        string `yaml:"from" json:"from"`
	To          string `yaml:"to" json:"to"`
	Port        int    `yaml:"port" json:"port"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Output is a named output with its unresolved expression.
type Output struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Value       string `yaml:"value" json:"value"`
}

// NewDocument renders g. Resources appear in deployment order.
func NewDocument(g *graph.Graph) (*Document, error) {
	doc := &Document{APIVersion: APIVersion, Stack: g.Name()}

	for _, h := range g.Order() {
		n := g.MustNode(h)
		props, err := properties(n.Properties)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s %q: %w", n.Kind(), n.Name, err)
		}
		r := Resource{Name: n.Name, Kind: string(n.Kind()), Properties: props, Tags: n.Tags}
		for _, e := range g.Edges() {
			if e.From == h {
				r.DependsOn = append(r.DependsOn, Dependency{Target: g.MustNode(e.To).Name, Label: e.Label})
			}
		}
		sort.SliceStable(r.DependsOn, func(i, j int) bool {
			if r.DependsOn[i].Label != r.DependsOn[j].Label {
				return r.DependsOn[i].Label < r.DependsOn[j].Label
			}
			return r.DependsOn[i].Target < r.DependsOn[j].Target
		})
		doc.Resources = append(doc.Resources, r)
	}

	for _, rule := range g.AccessRules() {
		doc.AccessRules = append(doc.AccessRules, AccessRule{
			From:        g.MustNode(rule.From).Name,
			To:          g.MustNode(rule.To).Name,
			Port:        rule.Port,
			Description: rule.Description,
		})
	}

	for _, o := range g.Outputs() {
		doc.Outputs = append(doc.Outputs, Output{Name: o.Name, Description: o.Description, Value: g.Expression(o)})
	}
	return doc, nil
}

// properties converts typed node properties into the generic form a loaded
// document carries, so rendered and loaded documents compare equal.
func properties(p graph.Properties) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resource returns the named resource.
func (d *Document) Resource(name string) (Resource, bool) {
	for _, r := range d.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// OutputValues returns the outputs as a name -> expression map.
func (d *Document) OutputValues() map[string]string {
	out := make(map[string]string, len(d.Outputs))
	for _, o := range d.Outputs {
		out[o.Name] = o.Value
	}
	return out
}

// Marshal encodes the document in the requested format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Load decodes a document written by Marshal in either format.
func Load(data []byte) (*Document, error) {
	var doc Document
	decoder := utilyaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), 4096)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("document is empty")
		}
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.APIVersion != APIVersion {
		return nil, fmt.Errorf("unsupported document version %q (expected %s)", doc.APIVersion, APIVersion)
	}
	if doc.Stack == "" {
		return nil, errors.New("document has no stack name")
	}
	return &doc, nil
}

// Fingerprint returns a short content hash of encoded document bytes.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
