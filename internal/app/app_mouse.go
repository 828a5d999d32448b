package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/snappy/internal/ui"
)

// routeMouseEvents routes mouse events over the contact list panel to it.
// Events elsewhere, or while a modal is open, are ignored.
func (m *Model) routeMouseEvents(msg tea.Msg) tea.Cmd {
	if m.modal.IsVisible() {
		return nil
	}
	listWidth := m.list.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseClickMsg:
		if mouseMsg.X < listWidth && mouseMsg.Y >= ui.HeaderHeight {
			if m.focus != FocusContacts {
				m.toggleFocus()
			}
			list, cmd := m.list.Update(adjustMouseClickMsg(mouseMsg))
			m.list = list
			return cmd
		}

	case tea.MouseWheelMsg:
		if mouseMsg.X < listWidth {
			list, cmd := m.list.Update(mouseMsg)
			m.list = list
			return cmd
		}
	}

	return nil
}

// adjustMouseClickMsg makes click coordinates relative to the panel area.
// Y is adjusted by subtracting the header height.
func adjustMouseClickMsg(msg tea.MouseClickMsg) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}
