// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/synth"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// stdout receives command results.
	stdout io.Writer = os.Stdout

	// stderr receives progress logs and summaries.
	stderr io.Writer = os.Stderr

	// findConfigFile locates the config file when no path is given.
	findConfigFile = config.FindConfigFile

	// loadConfig reads a config file. Validation is left to the synthesis
	// pipeline so findings are reported with warnings.
	loadConfig = config.LoadWithoutValidation

	// writeFile writes data to a file.
	writeFile = os.WriteFile

	// colorEnabled decides whether summaries are styled.
	colorEnabled = isInteractiveTTY
)

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// resolveConfig loads the config at path, or the nearest config file when
// path is empty.
func resolveConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("%w (run 'eksstack init' to create one)", err)
		}
		path = found
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// synthesize loads the config and runs the full pipeline with progress on
// stderr.
func synthesize(ctx context.Context, configPath string, verbosity int, metrics synth.MetricsRecorder) (*config.Config, *synth.State, error) {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	observer := synth.NewConsoleObserver(stderr, verbosity)
	state, err := synth.Synthesize(ctx, cfg, observer, metrics)
	if err != nil {
		return cfg, state, err
	}
	return cfg, state, nil
}

// emit writes data to path, or to stdout when path is empty or "-".
func emit(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := writeFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
