package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/theme"
)

// Canvas holds the settings a new drawing session starts with.
type Canvas struct {
	Width      int
	Height     int
	Background color.RGBA
	PenColor   color.RGBA
	BrushWidth int
	Font       string
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Canvas  Canvas
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// DefaultCanvas returns a 600x400 white canvas with a thin black pen.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:      600,
		Height:     400,
		Background: color.RGBA{255, 255, 255, 255},
		PenColor:   color.RGBA{0, 0, 0, 255},
		BrushWidth: 1,
		Font:       canvas.DefaultFont,
	}
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Canvas: DefaultCanvas(),
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "background = %s\n", canvas.FormatColor(c.Canvas.Background))
	fmt.Fprintf(&sb, "pen_color = %s\n", canvas.FormatColor(c.Canvas.PenColor))
	fmt.Fprintf(&sb, "brush_width = %d\n", c.Canvas.BrushWidth)
	if c.Canvas.Font != "" {
		fmt.Fprintf(&sb, "font = %s\n", c.Canvas.Font)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
