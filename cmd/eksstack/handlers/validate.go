package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/imamik/eksstack/internal/errdef"
	"github.com/imamik/eksstack/internal/synth"
)

// validationReport is the JSON form of validate's output.
type validationReport struct {
	Valid    bool                `json:"valid"`
	Findings []validationFinding `json:"findings"`
}

type validationFinding struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Validate checks the configuration and prints every error and warning.
// It fails when at least one error is found.
func Validate(configPath string, jsonOutput bool) error {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	findings := synth.Validate(cfg)
	var errs int
	for _, f := range findings {
		if f.IsError() {
			errs++
		}
	}

	if jsonOutput {
		report := validationReport{Valid: errs == 0, Findings: []validationFinding{}}
		for _, f := range findings {
			report.Findings = append(report.Findings, validationFinding{Field: f.Field, Message: f.Message, Severity: f.Severity})
		}
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(b))
	} else {
		printFindings(cfg.StackName, findings)
	}

	if errs > 0 {
		return errdef.NewConfiguration("%d configuration error(s) found", errs)
	}
	return nil
}

func printFindings(stack string, findings []synth.ValidationError) {
	fmt.Fprintln(stdout, paint(titleStyle, "eksstack validate: "+stack))
	if len(findings) == 0 {
		fmt.Fprintln(stdout, paint(okStyle, "  ✓ configuration is valid"))
		return
	}
	for _, f := range findings {
		marker := paint(warnStyle, "  ! warning")
		if f.IsError() {
			marker = paint(errorStyle, "  ✗ error  ")
		}
		fmt.Fprintf(stdout, "%s %s %s\n", marker, paint(dimStyle, f.Field+":"), f.Message)
	}
}
