package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 4 * time.Second

// FlashType sets the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient status line that replaces the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent to check whether the flash message has expired
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg after a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	filterMode   bool // Whether the contact filter has focus
	loggedIn     bool // Whether an identity is stored
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open chat"},
			{Key: "/", Desc: "filter"},
			{Key: "r", Desc: "refresh"},
			{Key: "ctrl+r", Desc: "reload contacts"},
			{Key: "t", Desc: "theme"},
			{Key: "q", Desc: "quit"},
		},
		loggedIn: true,
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(filterMode, loggedIn bool) {
	f.filterMode = filterMode
	f.loggedIn = loggedIn
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is shown
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	var icon string
	style := FooterDescStyle
	switch f.flashMessage.Type {
	case FlashError:
		icon = "✕"
		style = StatusErrorStyle
	case FlashWarning:
		icon = "⚠"
		style = StatusWarningStyle
	case FlashSuccess:
		icon = "✓"
		style = FooterKeyStyle
	default:
		icon = "ℹ"
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}

func renderBindings(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	return strings.Join(parts, "  "+FooterSeparatorStyle.Render("|")+"  ")
}

// render draws content on a single line, cutting it to the footer width
func (f *Footer) render(content string) string {
	if f.width > 0 {
		content = ansi.Truncate(content, max(f.width-2, 0), "…") // Padding(0, 1)
	}
	return f.render(content)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.render(f.renderFlash())
	}

	var content string
	switch {
	case f.filterMode:
		content = renderBindings([]KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "keep filter"},
			{Key: "esc", Desc: "clear"},
		})
	case !f.loggedIn:
		content = renderBindings([]KeyBinding{
			{Key: "snappy login", Desc: "store your identity"},
			{Key: "r", Desc: "retry"},
			{Key: "q", Desc: "quit"},
		})
	default:
		content = renderBindings(f.bindings)
	}

	return f.render(content)
}
