package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"

	"fobs/internal/core"
	"fobs/pkg/obstable"
)

// Focus tells which pane receives navigation keys.
type Focus int

const (
	FocusSteps Focus = iota
	FocusDocument
)

// StepItem is one entry of the step list. Index -1 stands for the source
// document.
type StepItem struct {
	Index   int
	Label   string
	Notes   []string
	Changed bool
}

func (s StepItem) Title() string {
	if s.Index < 0 {
		return "source"
	}
	return fmt.Sprintf("%d. %s", s.Index+1, s.Label)
}

func (s StepItem) Description() string {
	switch {
	case s.Index < 0:
		return "original obstable"
	case len(s.Notes) > 0:
		return "no effect: " + s.Notes[0]
	case s.Changed:
		return "changed"
	default:
		return "no change"
	}
}

func (s StepItem) FilterValue() string { return s.Label }

// model is the Bubbletea model of the preview.
type model struct {
	list     list.Model
	viewport viewport.Model
	conv     *core.Conversion
	title    string
	focus    Focus
	selected int // list index shown in the viewport, -1 before the first render
	quitting bool
	height   int
	width    int
}

const (
	defaultWidth  = 100
	defaultHeight = 24
)

// InitialModel creates the preview model for conv. title names the obstable.
func InitialModel(conv *core.Conversion, title string, width, height int) model {
	items := make([]list.Item, 0, len(conv.Steps)+1)
	items = append(items, StepItem{Index: -1})
	for i, s := range conv.Steps {
		items = append(items, StepItem{Index: i, Label: s.Label, Notes: s.Notes, Changed: s.Changed})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	// q and ctrl+c are handled by the model itself
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	m := model{
		list:     l,
		viewport: viewport.New(0, 0),
		conv:     conv,
		title:    title,
		selected: -1,
	}
	m = resize(m, width, height)
	return refreshDocument(m)
}

// document returns the document and its predecessor for list index i.
func (m model) document(i int) (obstable.Document, obstable.Document) {
	if i <= 0 {
		return m.conv.Source, m.conv.Source
	}
	return m.conv.Steps[i-1].Document, m.conv.Before(i - 1)
}

func resize(m model, width, height int) model {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height

	listWidth := min(max(width/3, 20), 50)
	paneHeight := max(height-4, 5)
	m.list.SetSize(listWidth, paneHeight)
	m.viewport.Width = max(width-listWidth-4, 10)
	m.viewport.Height = paneHeight
	m.selected = -1
	return m
}
