package wizard

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// newConfirm builds a yes/no prompt rendered on stderr.
func newConfirm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Overwrite").
				Negative("Keep").
				Value(value),
		),
	).WithProgramOptions(tea.WithOutput(os.Stderr))
}
