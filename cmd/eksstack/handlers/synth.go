package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/eksstack/internal/metrics"
	"github.com/imamik/eksstack/internal/render"
)

// SynthOptions configures Synth.
type SynthOptions struct {
	ConfigPath string
	// OutputPath receives the document; stdout when empty.
	OutputPath string
	Format     string
	// ManifestPath receives the aws-auth ConfigMap. Skipped when empty.
	ManifestPath string
	// MetricsFile receives declaration metrics in textfile format.
	MetricsFile string
	Verbosity   int
}

// Synth validates and assembles the stack and writes the synthesized
// document for the resolver.
func Synth(ctx context.Context, opts SynthOptions) error {
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	reg := metrics.New()
	_, state, err := synthesize(ctx, opts.ConfigPath, opts.Verbosity, reg)
	if err != nil {
		return err
	}
	reg.ObserveGraph(state.Graph)

	doc, err := render.NewDocument(state.Graph)
	if err != nil {
		return err
	}
	data, err := render.Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := emit(opts.OutputPath, data); err != nil {
		return err
	}

	if opts.ManifestPath != "" {
		cm, err := render.AWSAuthConfigMap(state.Graph)
		if err != nil {
			return err
		}
		manifest, err := render.MarshalManifest(cm)
		if err != nil {
			return err
		}
		if err := emit(opts.ManifestPath, manifest); err != nil {
			return err
		}
	}

	if opts.MetricsFile != "" {
		if err := reg.WriteTextfile(opts.MetricsFile); err != nil {
			return err
		}
	}

	fmt.Fprintf(stderr, "%s %d resources, %d access rules, %d outputs (fingerprint %s)\n",
		paint(okStyle, "✓ synthesized"), len(doc.Resources), len(doc.AccessRules), len(doc.Outputs), render.Fingerprint(data))
	return nil
}
