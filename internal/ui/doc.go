// Package ui provides the user interface components for the snappy TUI.
//
// # Overview
//
// The ui package implements the visual components of snappy using the Bubble
// Tea framework and Lipgloss styling library. It follows the Model-Update-View
// pattern established by Bubble Tea.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│ ✦ snappy        │                                   │
//	│ contacts...     │         Chat Panel                │
//	│ current user    │         (2/3 width)               │
//	│   (1/3 width)   │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// ContactList: The contact list with unread badges. It owns a contacts.List
// and performs its network work in tea.Cmd functions whose results come back
// as messages, so all state changes happen in Update. Enter or a mouse click
// selects a contact, zeroes its badge and marks the conversation read.
// '/' filters by username.
//
// Chat: Shows the conversation picked in the contact list.
//
// Header: Application title, open conversation and total unread count.
//
// Footer: Context-aware keyboard shortcuts and transient flash messages.
//
// # Styles
//
// Styles are rebuilt from the active Theme by regenerateStyles. The default
// theme is "snappy"; see BuiltinThemes for the rest.
package ui
