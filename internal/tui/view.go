package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"fobs/pkg/obstable"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	paneStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	focusedStyle = paneStyle.BorderForeground(lipgloss.Color("#00FFFF"))
)

// ModelView renders the preview model's view as a string.
func ModelView(m model) string {
	if m.quitting {
		return ""
	}

	steps, doc := paneStyle, paneStyle
	if m.focus == FocusSteps {
		steps = focusedStyle
	} else {
		doc = focusedStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		steps.Render(m.list.View()),
		doc.Render(m.viewport.View()),
	)
	help := helpStyle.Render(fmt.Sprintf("↑/↓ select step • tab switch pane (%s) • q quit", focusName(m.focus)))
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func focusName(f Focus) string {
	if f == FocusDocument {
		return "document"
	}
	return "steps"
}

// renderDocument numbers the lines of doc, truncates them to width display
// cells and highlights the changed ones.
func renderDocument(doc obstable.Document, changed map[int]bool, width int) string {
	digits := len(fmt.Sprint(len(doc)))
	textWidth := max(width-digits-1, 1)

	var b strings.Builder
	for i, line := range doc {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%*d", digits, i+1)))
		b.WriteByte(' ')
		line = runewidth.Truncate(strings.ReplaceAll(line, "\t", "    "), textWidth, "…")
		if changed[i] {
			line = changedStyle.Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}
