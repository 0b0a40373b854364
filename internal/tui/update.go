package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all Bubbletea update logic for the preview model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	}
	return forward(m, msg)
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.focus == FocusSteps {
			m.focus = FocusDocument
		} else {
			m.focus = FocusSteps
		}
		return m, nil
	}
	return forward(m, msg)
}

// forward passes msg to the focused pane and keeps the document pane in
// sync with the list selection.
func forward(m model, msg tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == FocusSteps {
		m.list, cmd = m.list.Update(msg)
		return refreshDocument(m), cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m = resize(m, msg.Width, msg.Height)
	return refreshDocument(m), nil
}

// refreshDocument renders the selected step into the viewport when the
// selection changed.
func refreshDocument(m model) model {
	i := m.list.Index()
	if i == m.selected {
		return m
	}
	m.selected = i
	doc, before := m.document(i)
	m.viewport.SetContent(renderDocument(doc, changedLines(before, doc), m.viewport.Width))
	m.viewport.GotoTop()
	return m
}
