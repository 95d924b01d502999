package render

import "image/color"

// Global render configuration for the e-ink panel.
var (
	Black = color.Gray{Y: 0x00}
	White = color.Gray{Y: 0xFF}
	// Grey is used for secondary text and placeholders; the panel dithers it.
	Grey = color.Gray{Y: 0x80}

	// Logical canvas size (portrait); displays scale it to their own bounds.
	CanvasWidth  = 480
	CanvasHeight = 800
)

// Theme metrics in canvas pixels.
const (
	Margin         = 16
	HeaderHeight   = 64
	TabBarHeight   = 52
	HintsHeight    = 48
	ListRowHeight  = 56
	MenuItemHeight = 52
	MenuItemGap    = 8
	BorderWidth    = 2
	SelectionWidth = 4
	SideHintWidth  = 28
	SideHintHeight = 72
	PopupWidth     = 320
	PopupHeight    = 96
)
