// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// ContactListWidthRatio is the denominator for the contact list width (1/3 of total width)
	ContactListWidthRatio = 3

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// BrandHeight is the brand line plus the separator under it
	BrandHeight = 2

	// CurrentUserHeight is the separator plus the current user line
	CurrentUserHeight = 2

	// ItemPaddingWidth is the horizontal padding of a contact row (Padding(0, 1))
	ItemPaddingWidth = 2
)

// Contact list behavior
const (
	// FilterCharLimit is the character limit of the filter input
	FilterCharLimit = 64

	// SpinnerInterval is the delay between spinner frames
	SpinnerInterval = 300 * time.Millisecond
)

// Modal constants
const (
	// ModalWidth is the width of modal dialogs
	ModalWidth = 56

	// HelpModalMaxVisible is the number of help rows shown at once
	HelpModalMaxVisible = 14
)
