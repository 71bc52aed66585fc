package ui

import "typewriter/internal/layout"

// DetermineLayoutMode decides how much chrome fits around the slide.
func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 10 || rows < 3 {
		return LayoutTooSmall
	}
	if rows < 8 {
		return LayoutCompact
	}
	return LayoutFull
}

// ContainerViewport is the region handed to the layout calculator: the
// whole window minus the status bar row when one is shown.
func ContainerViewport(cols, rows int, mode LayoutMode, status bool) layout.Viewport {
	if mode == LayoutFull && status {
		rows--
	}
	return layout.Viewport{Width: float64(max(0, cols)), Height: float64(max(0, rows))}
}
