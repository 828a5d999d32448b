package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/zhubert/snappy/internal/contacts"
)

// Chat is the right-hand panel showing the conversation picked in the
// contact list. Message history is not part of this client, so the panel
// shows who the conversation is with.
type Chat struct {
	width   int
	height  int
	focused bool

	contact   *contacts.Contact
	loginHint bool // no identity is stored
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	return &Chat{}
}

// SetSize sets the panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetContact switches the panel to the conversation with contact
func (c *Chat) SetContact(contact contacts.Contact) {
	c.contact = &contact
}

// ClearContact returns the panel to its placeholder
func (c *Chat) ClearContact() {
	c.contact = nil
}

// Contact returns the current conversation partner, or nil
func (c *Chat) Contact() *contacts.Contact {
	return c.contact
}

// SetLoginHint toggles the hint telling the user to log in first
func (c *Chat) SetLoginHint(show bool) {
	c.loginHint = show
}

// renderNoContactMessage renders the placeholder when no contact is selected
func (c *Chat) renderNoContactMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	if c.loginHint {
		sb.WriteString(StatusWarningStyle.Render("Not logged in"))
		sb.WriteString("\n\n")
		sb.WriteString(msgStyle.Render("Store your identity with:"))
		sb.WriteString("\n\n")
		sb.WriteString(keyStyle.Render("  snappy login --id ID --username NAME"))
		sb.WriteString("\n\n")
		sb.WriteString(msgStyle.Render("then press "))
		sb.WriteString(keyStyle.Render("r"))
		sb.WriteString(msgStyle.Render("."))
		return sb.String()
	}

	sb.WriteString(msgStyle.Italic(true).Render("No conversation selected"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(" on a contact to open the chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("/"))
	sb.WriteString(msgStyle.Render(" to filter contacts"))
	return sb.String()
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if c.contact == nil {
		return panelStyle.Width(c.width).Height(c.height).Render(c.renderNoContactMessage())
	}

	innerWidth := GetViewContext().InnerWidth(c.width)
	title := RenderAvatar(c.contact.AvatarImage, c.contact.Username) + " " +
		ChatTitleStyle.Render(truncateName(c.contact.Username, innerWidth-2))

	content := strings.Join([]string{
		title,
		SeparatorStyle.Render(strings.Repeat("─", innerWidth)),
		ChatHintStyle.Render("Conversation with " + c.contact.Username + " is marked as read."),
	}, "\n")

	return panelStyle.Width(c.width).Height(c.height).Render(content)
}
