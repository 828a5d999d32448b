package ui

import (
	"sync"

	"github.com/zhubert/snappy/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight     int
	FooterHeight     int
	ContentHeight    int
	ContactListWidth int
	ChatWidth        int

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// It should be called from the main event loop when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight

	// Content area is everything between header and footer
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	// Contact list is 1/3 of width, chat gets the rest
	v.ContactListWidth = width / ContactListWidthRatio
	v.ChatWidth = width - v.ContactListWidth

	logger.WithComponent("ui").Debug("terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"contactListWidth", v.ContactListWidth,
		"chatWidth", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}
