// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// so they always match the runtime values. Single-character keys like "j",
// "k", "/" are used as literals at the call site.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter  = tea.KeyPressMsg{Code: tea.KeyEnter}.String()  // "enter"
	Tab    = tea.KeyPressMsg{Code: tea.KeyTab}.String()    // "tab"
	Escape = tea.KeyPressMsg{Code: tea.KeyEscape}.String() // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlN = (tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}).String() // "ctrl+n"
	CtrlP = (tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}).String() // "ctrl+p"
	CtrlR = (tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}).String() // "ctrl+r"
)
