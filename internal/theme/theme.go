package theme

import (
	"image/color"
)

// Theme defines the colors of the window chrome around the canvas. The
// canvas itself is never themed.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the canvas
	Foreground color.RGBA // Labels drawn directly on the background

	// Toolbar
	ToolbarBackground color.RGBA
	Separator         color.RGBA

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundPress  color.RGBA
	ButtonBackgroundActive color.RGBA // Button of the current tool
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Status bar and prompts
	StatusBackground color.RGBA
	StatusText       color.RGBA
	PromptBackground color.RGBA
	PromptText       color.RGBA
	Accent           color.RGBA // Focus rings, slider knob, selected swatch

	CanvasShadow color.RGBA
}

// Default returns the hardcoded light theme used when nothing else loads.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{205, 205, 210, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		Separator:              color.RGBA{170, 170, 170, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress:  color.RGBA{150, 150, 150, 255},
		ButtonBackgroundActive: color.RGBA{160, 190, 230, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		StatusBackground:       color.RGBA{200, 200, 200, 255},
		StatusText:             color.RGBA{0, 0, 0, 255},
		PromptBackground:       color.RGBA{245, 245, 245, 255},
		PromptText:             color.RGBA{0, 0, 0, 255},
		Accent:                 color.RGBA{40, 110, 200, 255},
		CanvasShadow:           color.RGBA{0, 0, 0, 140},
	}
}
