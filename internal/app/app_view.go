package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.syncPanels()

	header := m.header.View()
	footer := m.footer.View()

	// Render panels side by side
	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		m.chat.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	// Show the modal centered in place of the panels
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return view
}

// syncPanels copies list state that the other panels display.
func (m *Model) syncPanels() {
	loggedIn := !m.list.IdentityMissing()
	m.footer.SetContext(m.list.IsFilterMode(), loggedIn)
	m.chat.SetLoginHint(!loggedIn)
	m.header.SetUnreadTotal(m.list.List().Counts().Total())
}
