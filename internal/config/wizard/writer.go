package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imamik/eksstack/internal/config"
)

// Function variables for dependency injection in tests.
var (
	confirmOverwrite = defaultConfirmOverwrite
	now              = time.Now
)

// WriteConfig writes cfg to outputPath with a descriptive header. The
// encoding follows the file extension. An existing file is only replaced
// after confirmation.
func WriteConfig(cfg *config.Config, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("refusing to overwrite %s", outputPath)
		}
	}

	data, err := config.Marshal(cfg, config.FormatFromPath(outputPath))
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(cfg))
	sb.WriteString("\n")
	sb.Write(data)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateHeader returns a comment block that is valid in YAML and TOML.
func generateHeader(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("# eksstack configuration\n")
	fmt.Fprintf(&sb, "# Generated on %s\n", now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "# Stack: %s (%s)\n", cfg.StackName, cfg.Region)
	sb.WriteString("#\n")
	fmt.Fprintf(&sb, "# %s overrides admin_identity_arn.\n", config.EnvAdminIdentityARN)
	sb.WriteString("# Synthesize with: eksstack synth\n")
	return sb.String()
}

func defaultConfirmOverwrite(path string) (bool, error) {
	var confirm bool
	err := newConfirm(fmt.Sprintf("%s already exists. Overwrite?", path), &confirm).Run()
	return confirm, err
}
