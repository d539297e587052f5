package wizard

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/util/arnutil"
)

var (
	nameRegex    = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)
	versionRegex = regexp.MustCompile(`^[1-9][0-9]*\.[0-9]+$`)
)

// Node pool presets offered by the wizard.
const (
	PoolsOnDemand = "ondemand"
	PoolsMixed    = "mixed"
	PoolsSpot     = "spot"
)

// WizardResult holds the answers from the interactive wizard.
type WizardResult struct {
	StackName        string
	App              string
	Region           string
	AdminIdentityARN string
	ClusterVersion   string
	MaxAZs           int
	Pools            string
}

// RunWizard runs the interactive configuration wizard. Forms render on
// stderr so stdout stays clean for piping.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		StackName:      config.DefaultStackName,
		App:            config.DefaultApp,
		Region:         config.DefaultRegion,
		ClusterVersion: config.DefaultClusterVersion,
		MaxAZs:         config.DefaultMaxAZs,
		Pools:          PoolsMixed,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack name").
				Description("Identifies the stack towards the resolver").
				Value(&result.StackName).
				Validate(validateName),
			huh.NewInput().
				Title("Application").
				Description("Prefix for resource and output names").
				Value(&result.App).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Region").
				Options(RegionOptions()...).
				Value(&result.Region),
		).Title("Stack"),

		huh.NewGroup(
			huh.NewInput().
				Title("Administrator identity").
				Description("IAM user or role ARN granted system:masters").
				Placeholder("arn:aws:iam::123456789012:user/johndoe").
				Value(&result.AdminIdentityARN).
				Validate(validateIdentity),
		).Title("Access"),

		huh.NewGroup(
			huh.NewInput().
				Title("Kubernetes version").
				Value(&result.ClusterVersion).
				Validate(validateVersion),
			huh.NewSelect[int]().
				Title("Availability zones").
				Options(
					huh.NewOption("1 zone (no redundancy)", 1),
					huh.NewOption("2 zones", 2),
					huh.NewOption("3 zones", 3),
				).
				Value(&result.MaxAZs),
			huh.NewSelect[string]().
				Title("Node pools").
				Options(
					huh.NewOption("On-demand only", PoolsOnDemand),
					huh.NewOption("On-demand plus spot", PoolsMixed),
					huh.NewOption("Spot only", PoolsSpot),
				).
				Value(&result.Pools),
		).Title("Cluster"),
	).WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}
	return result, nil
}

// RegionOptions returns the regions offered by the wizard.
func RegionOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("US East (N. Virginia)", "us-east-1"),
		huh.NewOption("US West (Oregon)", "us-west-2"),
		huh.NewOption("Europe (Frankfurt)", "eu-central-1"),
		huh.NewOption("Europe (Ireland)", "eu-west-1"),
		huh.NewOption("Asia Pacific (Singapore)", "ap-southeast-1"),
	}
}

func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errNameRequired
	}
	if !nameRegex.MatchString(s) {
		return errNameInvalid
	}
	return nil
}

func validateIdentity(s string) error {
	if strings.TrimSpace(s) == "" {
		return errIdentityRequired
	}
	_, err := arnutil.ParseIdentity(s)
	return err
}

func validateVersion(s string) error {
	if !versionRegex.MatchString(strings.TrimSpace(s)) {
		return errVersionInvalid
	}
	return nil
}
