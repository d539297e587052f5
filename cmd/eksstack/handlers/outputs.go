package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/graph"
)

// readFile reads attribute and document files.
var readFile = os.ReadFile

// outputEntry is one line of the outputs listing.
type outputEntry struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Outputs prints the stack outputs in registration order. Values are
// resolved from attributesPath when given, otherwise they are printed as
// ${node.Attribute} expressions.
//
// The attributes file maps node names to their resolved attributes:
//
//	moodle-db:
//	  Endpoint.Address: db.example.internal
//	  Endpoint.Port: "3306"
func Outputs(ctx context.Context, configPath, attributesPath string, jsonOutput bool) error {
	_, state, err := synthesize(ctx, configPath, 0, nil)
	if err != nil {
		return err
	}
	g := state.Graph

	values := g.UnresolvedOutputs()
	if attributesPath != "" {
		attrs, err := loadAttributes(attributesPath)
		if err != nil {
			return err
		}
		if values, err = g.ResolveOutputs(attrs); err != nil {
			return err
		}
	}

	entries := make([]outputEntry, 0, len(g.Outputs()))
	for _, o := range g.Outputs() {
		entries = append(entries, outputEntry{Name: o.Name, Value: values[o.Name], Description: o.Description})
	}

	if jsonOutput {
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(b))
		return nil
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%-*s  %s\n", width, e.Name, e.Value)
	}
	return nil
}

// loadAttributes reads resolved node attributes from a YAML or JSON file.
func loadAttributes(path string) (graph.Attributes, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes: %w", err)
	}
	var attrs graph.Attributes
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errdef.NewResolution("failed to parse attributes %s: %w", path, err)
	}
	return attrs, nil
}
