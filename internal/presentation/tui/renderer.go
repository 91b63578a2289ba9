package tui

import (
	"strings"

	"github.com/aretw0/deeds/pkg/runner"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a renderer that formats answers as markdown using glamour.
// When glamour cannot be initialised answers are printed as is.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown, err
		}
		return strings.Trim(out, "\n"), nil
	}
}
