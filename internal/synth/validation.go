package synth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/errdef"
)

// Severities of validation findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Run implements the Phase interface. Warnings are logged and recorded;
// any error aborts synthesis with a configuration error.
func (vp *ValidationPhase) Run(ctx *Context) error {
	findings := Validate(ctx.Config)
	ctx.State.Findings = findings

	var errs []string
	for _, f := range findings {
		LogValidationFinding(ctx.Observer, vp.Name(), f)
		if ctx.Metrics != nil {
			ctx.Metrics.ObserveFinding(f.Severity)
		}
		if f.IsError() {
			errs = append(errs, f.Error())
		}
	}

	if len(errs) > 0 {
		return errdef.NewConfiguration("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate returns the errors and warnings for cfg. Errors come from
// config.Config.Validate; warnings flag settings that are valid but weaken
// availability or durability.
func Validate(cfg *config.Config) []ValidationError {
	var findings []ValidationError

	if err := cfg.Validate(); err != nil {
		for _, e := range flatten(err) {
			field, msg, ok := strings.Cut(e.Error(), ": ")
			if !ok {
				field, msg = "config", e.Error()
			}
			findings = append(findings, ValidationError{Field: field, Message: msg, Severity: SeverityError})
		}
	}

	return append(findings, warnings(cfg)...)
}

func warnings(cfg *config.Config) []ValidationError {
	var w []ValidationError
	warn := func(field, msg string) {
		w = append(w, ValidationError{Field: field, Message: msg, Severity: SeverityWarning})
	}

	if cfg.Network.MaxAZs == 1 {
		warn("network.max_azs", "a single availability zone leaves the stack without zone redundancy")
	}
	if cfg.Cluster.EndpointAccess == "public" {
		warn("cluster.endpoint_access", "the API endpoint is public only; nodes reach it over the internet")
	}
	if cfg.SpotOnly() {
		warn("node_pools", "all node pools use spot capacity and may be reclaimed at the same time")
	}
	if cfg.Database.MultiAZ != nil && !*cfg.Database.MultiAZ {
		warn("database.multi_az", "the database is not replicated across zones")
	}
	if cfg.FileSystem.AutomaticBackups != nil && !*cfg.FileSystem.AutomaticBackups {
		warn("file_system.automatic_backups", "automatic backups are disabled")
	}
	if cfg.FileSystem.RemovalPolicy == "DESTROY" {
		warn("file_system.removal_policy", "the file system and its data are deleted when the stack is torn down")
	}
	if cfg.Cache.NumCacheClusters == 1 {
		warn("cache.num_cache_clusters", "a single cache node has no replica")
	}
	return w
}

// flatten splits joined errors into their leaves.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, flatten(e)...)
	}
	return out
}
