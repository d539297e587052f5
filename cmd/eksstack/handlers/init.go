package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// buildConfig turns wizard answers into a config.
	buildConfig = wizard.BuildConfig

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := buildConfig(result)

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, paint(titleStyle, "eksstack - application stack on EKS"))
	fmt.Fprintln(stderr, paint(dimStyle, "===================================="))
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "This wizard creates a stack configuration with sensible defaults.")
	fmt.Fprintln(stderr)
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, paint(okStyle, "Configuration saved!"))
	fmt.Fprintf(stderr, "  File: %s\n\n", outputPath)

	fmt.Fprintln(stderr, paint(sectionStyle, "Stack Summary"))
	fmt.Fprintf(stderr, "  Name:       %s\n", cfg.StackName)
	fmt.Fprintf(stderr, "  Region:     %s (%d zones)\n", cfg.Region, cfg.Network.MaxAZs)
	fmt.Fprintf(stderr, "  Cluster:    %s (Kubernetes %s)\n", cfg.Cluster.Name, cfg.Cluster.Version)
	fmt.Fprintf(stderr, "  Node pools: %d\n", len(cfg.NodePools))
	fmt.Fprintf(stderr, "  Database:   %s %s\n", cfg.Database.Engine, cfg.Database.EngineVersion)
	fmt.Fprintf(stderr, "  Cache:      %s x %d\n", cfg.Cache.NodeType, cfg.Cache.NumCacheClusters)
	fmt.Fprintln(stderr)

	fmt.Fprintln(stderr, paint(sectionStyle, "Next Steps"))
	fmt.Fprintf(stderr, "  1. Review %s if needed\n", outputPath)
	fmt.Fprintln(stderr, "  2. Check the configuration:")
	fmt.Fprintln(stderr, "     eksstack validate")
	fmt.Fprintln(stderr, "  3. Render the stack for the resolver:")
	fmt.Fprintln(stderr, "     eksstack synth -o stack.yaml")
	fmt.Fprintln(stderr)
}
