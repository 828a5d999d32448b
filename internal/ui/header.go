package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// titleText is the brand shown at the left of the header
const titleText = " snappy"

// Header represents the top header bar
type Header struct {
	width       int
	contactName string
	unreadTotal int
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetContactName sets the name of the open conversation
func (h *Header) SetContactName(name string) {
	h.contactName = name
}

// SetUnreadTotal sets the total unread count across all contacts
func (h *Header) SetUnreadTotal(total int) {
	h.unreadTotal = total
}

// View renders the header
func (h *Header) View() string {
	var rightText, unreadText string
	if h.contactName != "" {
		rightText = h.contactName
	}
	if h.unreadTotal > 0 {
		unreadText = fmt.Sprintf("(%d unread)", h.unreadTotal)
		if rightText != "" {
			rightText += " "
		}
		rightText += unreadText
	}
	if rightText != "" {
		rightText += " "
	}

	paddingLen := max(h.width-runewidth.StringWidth(titleText)-runewidth.StringWidth(rightText), 0)
	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, unreadText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// The muted suffix is drawn in the muted text color.
func (h *Header) renderGradient(content string, muted string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	mutedStart := -1
	if muted != "" {
		if i := strings.LastIndex(content, muted); i >= 0 {
			mutedStart = len([]rune(content[:i]))
		}
	}

	width := len(runes)
	titleLen := len([]rune(titleText))
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen)

		if mutedStart >= 0 && i >= mutedStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
