// Package tui implements fobs preview, a terminal UI stepping through the
// documents a conversion goes through.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"fobs/internal/core"
)

// Init initializes the preview model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run launches the preview for conv; title names the obstable.
func Run(conv *core.Conversion, title string) error {
	m := InitialModel(conv, title, defaultWidth, defaultHeight)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithAltScreen())

	_, err := p.Run()
	return err
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
