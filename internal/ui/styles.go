package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, rebuilt from the active theme by regenerateStyles
var (
	ColorPrimary       color.Color
	ColorSecondary     color.Color
	ColorBorder        color.Color
	ColorBorderFocus   color.Color
	ColorBg            color.Color
	ColorBgSelected    color.Color
	ColorBgCurrentUser color.Color
	ColorText          color.Color
	ColorTextMuted     color.Color
	ColorTextInverse   color.Color
	ColorBadge         color.Color
	ColorWarning       color.Color
	ColorError         color.Color
)

// Footer styles
var (
	FooterStyle          lipgloss.Style
	FooterKeyStyle       lipgloss.Style
	FooterDescStyle      lipgloss.Style
	FooterSeparatorStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
)

// Contact list styles
var (
	BrandStyle             lipgloss.Style
	BrandLogoStyle         lipgloss.Style
	SpinnerStyle           lipgloss.Style
	SeparatorStyle         lipgloss.Style
	ContactItemStyle       lipgloss.Style
	ContactSelectedStyle   lipgloss.Style
	ContactCursorStyle     lipgloss.Style
	BadgeStyle             lipgloss.Style
	CurrentUserStyle       lipgloss.Style
	AvatarPlaceholderStyle lipgloss.Style
	EmptyStyle             lipgloss.Style
	FilterPromptStyle      lipgloss.Style
)

// Chat panel styles
var (
	ChatTitleStyle lipgloss.Style
	ChatHintStyle  lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	StatusWarningStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)
