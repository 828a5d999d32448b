package ui

import "testing"

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	got := GetTheme("no-such-theme")
	if got.Name != BuiltinThemes[DefaultTheme].Name {
		t.Errorf("GetTheme(unknown) = %q, want default %q", got.Name, BuiltinThemes[DefaultTheme].Name)
	}
}

func TestThemeNames_Sorted(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(BuiltinThemes) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(BuiltinThemes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("ThemeNames() not sorted: %v", names)
		}
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetThemeByName(string(ThemeNord))
	if CurrentThemeName() != ThemeNord {
		t.Errorf("CurrentThemeName() = %q, want %q", CurrentThemeName(), ThemeNord)
	}

	SetThemeByName("")
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("empty name should select the default, got %q", CurrentThemeName())
	}
}

func TestTheme_Defaults(t *testing.T) {
	theme := Theme{Primary: "#111111"}
	if theme.GetBgSelected() != "#111111" {
		t.Errorf("GetBgSelected() = %q, want Primary", theme.GetBgSelected())
	}
	if theme.GetBorderFocus() != "#111111" {
		t.Errorf("GetBorderFocus() = %q, want Primary", theme.GetBorderFocus())
	}

	theme.BgSelected = "#222222"
	theme.BorderFocus = "#333333"
	if theme.GetBgSelected() != "#222222" || theme.GetBorderFocus() != "#333333" {
		t.Error("explicit colors should win over Primary")
	}
}

func TestBuiltinThemes_Complete(t *testing.T) {
	for name, theme := range BuiltinThemes {
		for field, value := range map[string]string{
			"Primary":       theme.Primary,
			"Secondary":     theme.Secondary,
			"Bg":            theme.Bg,
			"BgCurrentUser": theme.BgCurrentUser,
			"Text":          theme.Text,
			"TextMuted":     theme.TextMuted,
			"Badge":         theme.Badge,
			"Border":        theme.Border,
		} {
			if len(value) != 7 || value[0] != '#' {
				t.Errorf("theme %s: %s = %q, want #RRGGBB", name, field, value)
			}
		}
	}
}
