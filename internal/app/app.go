package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/contacts"
	"github.com/zhubert/snappy/internal/logger"
	"github.com/zhubert/snappy/internal/notification"
	"github.com/zhubert/snappy/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusContacts Focus = iota
	FocusChat
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusContacts:
		return "Contacts"
	case FocusChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Service is the remote API surface the app needs: the unread-count and
// mark-read endpoints used by the contact list, plus the contact directory.
type Service interface {
	ui.MessageService
	Contacts(ctx context.Context, userID string) ([]contacts.Contact, error)
}

// NotifyFunc announces new unread messages from a contact.
type NotifyFunc func(username string, count int) error

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	list    *ui.ContactList
	chat    *ui.Chat
	modal   *ui.Modal

	identities ui.IdentityLoader
	service    Service
	notify     NotifyFunc

	width  int
	height int
	focus  Focus

	loadingContacts bool
	quitting        bool
}

// contactsLoadedMsg carries the contact directory fetched for the stored identity.
type contactsLoadedMsg struct {
	contacts []contacts.Contact
	err      error
}

// New creates a new app model. The contact list's requests are bound to ctx.
func New(ctx context.Context, cfg *config.Config, version string, identities ui.IdentityLoader, service Service) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:     cfg,
		version:    version,
		header:     ui.NewHeader(),
		footer:     ui.NewFooter(),
		chat:       ui.NewChat(),
		modal:      ui.NewModal(),
		identities: identities,
		service:    service,
		notify:     notification.UnreadArrived,
		focus:      FocusContacts,
	}
	m.list = ui.NewContactList(ctx, identities, service, m.changeChat)
	m.list.SetFocused(true)

	return m
}

// SetNotifyFunc replaces the desktop notifier.
func (m *Model) SetNotifyFunc(fn NotifyFunc) {
	m.notify = fn
}

// ContactList returns the contact list panel.
func (m *Model) ContactList() *ui.ContactList {
	return m.list
}

// Chat returns the chat panel.
func (m *Model) Chat() *ui.Chat {
	return m.chat
}

// Focus returns the focused panel.
func (m *Model) Focus() Focus {
	return m.focus
}

// Init loads the contact directory and starts the first unread-count refresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), m.loadContacts())
}

// loadContacts fetches the contact directory for the stored identity.
func (m *Model) loadContacts() tea.Cmd {
	if m.loadingContacts || m.quitting {
		return nil
	}
	m.loadingContacts = true

	ctx := m.list.List().Context()
	identities := m.identities
	service := m.service
	return func() tea.Msg {
		user, err := identities.Load()
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		cs, err := service.Contacts(ctx, user.ID)
		return contactsLoadedMsg{contacts: cs, err: err}
	}
}

// changeChat is the contact list's selection callback.
func (m *Model) changeChat(contact contacts.Contact) {
	logger.WithComponent("app").Debug("chat changed", "contact", contact.ID)
	m.chat.SetContact(contact)
	m.header.SetContactName(contact.Username)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseWheelMsg:
		return m, m.routeMouseEvents(msg)

	case contactsLoadedMsg:
		return m.handleContactsLoaded(msg)

	case ui.CountsUpdatedMsg:
		return m, m.handleCountsUpdated(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()
	}

	// Refresh results, mark-read results and spinner ticks belong to the list
	list, cmd := m.list.Update(msg)
	m.list = list
	return m, cmd
}

func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.list.SetSize(ctx.ContactListWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

func (m *Model) toggleFocus() {
	if m.focus == FocusContacts {
		// Only allow switching to chat if a conversation is open
		if m.chat.Contact() == nil {
			return
		}
		m.focus = FocusChat
		m.list.SetFocused(false)
		m.chat.SetFocused(true)
	} else {
		m.focus = FocusContacts
		m.list.SetFocused(true)
		m.chat.SetFocused(false)
	}
	logger.WithComponent("app").Debug("focus changed", "focus", m.focus)
}

// quit closes the contact list so late results are dropped, then exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.list.Close()
	return m, tea.Quit
}
