// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import (
	"sort"

	"charm.land/lipgloss/v2"
)

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (brand, focus, header)
	Primary string
	// Secondary is the secondary accent color (keys, spinner, filter prompt)
	Secondary string

	// Background colors
	Bg            string // Main background
	BgSelected    string // Selected contact background (defaults to Primary if empty)
	BgCurrentUser string // Current user block at the bottom of the list

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Badge   string // Unread badge background
	Warning string
	Error   string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused panel borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeSnappy     ThemeName = "snappy"
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeSnappy

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeSnappy: {
		Name:          "Snappy",
		Primary:       "#4E0EFF",
		Secondary:     "#9A86F3",
		Bg:            "#080420",
		BgSelected:    "#9A86F3",
		BgCurrentUser: "#0D0D30",
		Text:          "#FFFFFF",
		TextMuted:     "#A5A1C2",
		TextInverse:   "#080420",
		Badge:         "#FF3B3B",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
		Border:        "#2A2550",
		BorderFocus:   "#9A86F3",
	},
	ThemeDarkPurple: {
		Name:          "Dark Purple",
		Primary:       "#7C3AED",
		Secondary:     "#06B6D4",
		Bg:            "#1F2937",
		BgCurrentUser: "#111827",
		Text:          "#F9FAFB",
		TextMuted:     "#9CA3AF",
		TextInverse:   "#1F2937",
		Badge:         "#EF4444",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
		Border:        "#374151",
	},
	ThemeNord: {
		Name:          "Nord",
		Primary:       "#88C0D0",
		Secondary:     "#81A1C1",
		Bg:            "#2E3440",
		BgSelected:    "#5E81AC",
		BgCurrentUser: "#3B4252",
		Text:          "#ECEFF4",
		TextMuted:     "#D8DEE9",
		TextInverse:   "#2E3440",
		Badge:         "#BF616A",
		Warning:       "#EBCB8B",
		Error:         "#BF616A",
		Border:        "#4C566A",
	},
	ThemeLight: {
		Name:          "Light",
		Primary:       "#6D28D9",
		Secondary:     "#0891B2",
		Bg:            "#FFFFFF",
		BgSelected:    "#DDD6FE",
		BgCurrentUser: "#F3F4F6",
		Text:          "#111827",
		TextMuted:     "#6B7280",
		TextInverse:   "#FFFFFF",
		Badge:         "#DC2626",
		Warning:       "#D97706",
		Error:         "#DC2626",
		Border:        "#D1D5DB",
	},
}

// ThemeNames returns the built-in theme names in sorted order
func ThemeNames() []ThemeName {
	names := make([]ThemeName, 0, len(BuiltinThemes))
	for name := range BuiltinThemes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})
	return names
}

// GetTheme returns a theme by name, falling back to the default
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name.
// Unknown or empty names select the default theme.
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

func init() {
	regenerateStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgSelected = lipgloss.Color(t.GetBgSelected())
	ColorBgCurrentUser = lipgloss.Color(t.BgCurrentUser)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorBadge = lipgloss.Color(t.Badge)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterSeparatorStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	BrandStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	BrandLogoStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	ContactItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	ContactSelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	ContactCursorStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	BadgeStyle = lipgloss.NewStyle().
		Background(ColorBadge).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1)

	CurrentUserStyle = lipgloss.NewStyle().
		Background(ColorBgCurrentUser).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	AvatarPlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Bold(true)

	EmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	ChatTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	ChatHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
}
