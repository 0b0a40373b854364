package obsfile

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"

	"fobs/pkg/obstable"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// UnifiedDiff renders the changes from a to b with three lines of context.
// Identical documents give an empty string.
func UnifiedDiff(a, b obstable.Document, fromName, toName string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(a),
		B:        lines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
}

// lines gives every line its terminator, as difflib expects.
func lines(doc obstable.Document) []string {
	out := make([]string, len(doc))
	for i, l := range doc {
		out[i] = l + "\n"
	}
	return out
}

// Colorize paints a unified diff for a terminal.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	ls := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, l := range ls {
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			ls[i] = headerStyle.Render(l)
		case strings.HasPrefix(l, "@@"):
			ls[i] = hunkStyle.Render(l)
		case strings.HasPrefix(l, "+"):
			ls[i] = addedStyle.Render(l)
		case strings.HasPrefix(l, "-"):
			ls[i] = removedStyle.Render(l)
		}
	}
	return strings.Join(ls, "\n") + "\n"
}
