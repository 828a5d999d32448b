package app

import (
	tea "charm.land/bubbletea/v2"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/keys"
	"github.com/zhubert/snappy/internal/logger"
	"github.com/zhubert/snappy/internal/ui"
)

// handleKey handles global shortcuts and forwards the rest to the focused panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		return m.quit()
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// The filter input owns every other key while it is open
	if m.list.IsFilterMode() {
		list, cmd := m.list.Update(msg)
		m.list = list
		return m, cmd
	}

	switch key {
	case "q":
		return m.quit()
	case keys.Tab:
		m.toggleFocus()
		return m, nil
	case keys.Escape:
		if m.focus == FocusChat {
			m.toggleFocus()
			return m, nil
		}
	case keys.CtrlR:
		return m, m.loadContacts()
	case "t":
		return m, m.cycleTheme()
	case "?":
		help := ui.NewHelpState(ui.DefaultHelpSections())
		help.Version = m.version
		m.modal.Show(help)
		return m, nil
	}

	if m.focus != FocusContacts {
		return m, nil
	}
	list, cmd := m.list.Update(msg)
	m.list = list
	return m, cmd
}

// handleModalKey closes the modal or forwards the key to it.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleContactsLoaded hands a fetched directory to the contact list.
func (m *Model) handleContactsLoaded(msg contactsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingContacts = false
	if m.quitting {
		return m, nil
	}

	log := logger.WithComponent("app")
	if msg.err != nil {
		switch {
		case perrors.Is(msg.err, perrors.KindNotFound):
			log.Debug("no identity stored, skipping contact directory")
			return m, nil
		case perrors.GetOp(msg.err) == perrors.OpLoadIdentity:
			log.Warn("stored identity is unreadable", "error", msg.err)
			return m, m.ShowFlashWarning("Stored identity is unreadable, run snappy login")
		}
		log.Warn("failed to load contacts", "error", msg.err)
		return m, m.ShowFlashError("Could not load contacts")
	}

	log.Debug("contacts loaded", "count", len(msg.contacts))
	return m, m.list.SetContacts(msg.contacts)
}

// handleCountsUpdated sends a desktop notification for every contact whose
// unread count went up. The first refresh after start is not announced.
func (m *Model) handleCountsUpdated(msg ui.CountsUpdatedMsg) tea.Cmd {
	if msg.Initial || m.notify == nil || !m.config.GetNotificationsEnabled() {
		return nil
	}

	list := m.list.List()
	notify := m.notify
	var cmds []tea.Cmd
	for _, id := range msg.Increases() {
		name := id
		if i := list.IndexOf(id); i >= 0 {
			name = list.Contacts()[i].Username
		}
		count := msg.After.Get(id)
		cmds = append(cmds, func() tea.Msg {
			if err := notify(name, count); err != nil {
				logger.WithComponent("app").Warn("failed to send notification", "contact", id, "error", err)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() tea.Cmd {
	names := ui.ThemeNames()
	current := ui.CurrentThemeName()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}

	ui.SetTheme(next)
	m.config.SetTheme(string(next))
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return cmd
	}
	return m.ShowFlashInfo("Theme: " + ui.GetTheme(next).Name)
}
