package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the content of the '?' overlay.
const helpMarkdown = `# mmbridge dashboard

Drives the player through the live automation session. The queue and
transport state refresh automatically.

| Key | Action |
|-----|--------|
| space | toggle play/pause |
| s | stop |
| n / p | next / previous track |
| + / - | volume up / down |
| x | toggle shuffle |
| r | toggle repeat |
| R | refresh now |
| q | quit |
`

// renderMarkdownWidth renders markdown constrained to a column width.
// Falls back to the raw input if glamour is unavailable or rendering fails.
func renderMarkdownWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
