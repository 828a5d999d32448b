package ui

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog. State is nil when no modal is visible.
type Modal struct {
	State ModalState
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on a screen of the given size
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	modal := ModalStyle.Render(m.State.Render())

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// HelpShortcut is one key binding shown in the help modal
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// DefaultHelpSections lists every key binding of the app.
func DefaultHelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Contacts",
			Shortcuts: []HelpShortcut{
				{Key: "↑/↓ j/k", Desc: "Move the cursor"},
				{Key: "g/G", Desc: "First / last contact"},
				{Key: "pgup/pgdown", Desc: "Page up / down"},
				{Key: "enter", Desc: "Open chat and mark read"},
				{Key: "click", Desc: "Open chat and mark read"},
				{Key: "r", Desc: "Refresh unread counts"},
			},
		},
		{
			Title: "Filter",
			Shortcuts: []HelpShortcut{
				{Key: "/", Desc: "Filter contacts by name"},
				{Key: "enter", Desc: "Keep the filter"},
				{Key: "esc", Desc: "Clear the filter"},
			},
		},
		{
			Title: "App",
			Shortcuts: []HelpShortcut{
				{Key: "tab", Desc: "Switch panel"},
				{Key: "ctrl+r", Desc: "Reload contacts"},
				{Key: "t", Desc: "Next theme"},
				{Key: "?", Desc: "Toggle this help"},
				{Key: "q / ctrl+c", Desc: "Quit"},
			},
		},
	}
}

// helpShortcutItem wraps a HelpShortcut for use in a bubbles list.
type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem represents a section header in the list.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

// helpDelegate renders help list items.
type helpDelegate struct{}

func (d helpDelegate) Height() int                              { return 1 }
func (d helpDelegate) Spacing() int                             { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Render(i.title))

	case helpShortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(16)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// HelpState wraps a bubbles list.Model for the help modal.
type HelpState struct {
	list list.Model

	// Version is shown next to the close hint when set
	Version string
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	help := "up/down: scroll  esc or ?: close"
	if s.Version != "" {
		help += "  snappy " + s.Version
	}
	return help
}

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SelectedShortcut returns the highlighted shortcut, or nil on a section header.
func (s *HelpState) SelectedShortcut() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// NewHelpState creates a HelpState listing sections in order.
func NewHelpState(sections []HelpSection) *HelpState {
	// Interleave section headers with shortcuts
	var items []list.Item
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth-6, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(false)

	// Start selection on the first shortcut item
	for i, item := range items {
		if _, ok := item.(helpShortcutItem); ok {
			l.Select(i)
			break
		}
	}

	return &HelpState{list: l}
}
