// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	ViewportHorizontalPadding = 4
	ViewportVerticalPadding   = 8

	// Responsive breakpoints
	MinimumTerminalWidth = 60
	CompactModeWidth     = 84 // three cards side by side need this much

	DialogMaxWidth = 72
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width for a viewport
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ViewportHorizontalPadding
	if w < MinimumTerminalWidth-ViewportHorizontalPadding {
		return MinimumTerminalWidth - ViewportHorizontalPadding
	}
	return w
}

// DialogSize returns the results dialog viewport size.
func (l LayoutConfig) DialogSize() (width, height int) {
	width = l.ContentWidth()
	if width > DialogMaxWidth {
		width = DialogMaxWidth
	}
	height = l.TerminalHeight - ViewportVerticalPadding
	if height < 8 {
		height = 8
	}
	return width, height
}
