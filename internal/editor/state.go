// Package editor implements the tool state machine and stroke compositor
// that sit between pointer input and the two buffers of a drawing session.
package editor

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Tool is the active interaction mode.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	// ToolColorPicker samples the canvas on the next click, then reverts.
	ToolColorPicker
	// ToolTextPlacement commits pending text on the next click.
	ToolTextPlacement
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolColorPicker:
		return "picker"
	case ToolTextPlacement:
		return "text"
	default:
		return "unknown"
	}
}

const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 20
	DefaultBrushWidth = 1
)

// BrushPresets are the quick-pick widths offered next to the slider.
var BrushPresets = []int{1, 2, 5, 10, 20}

// ClampBrushWidth limits n to [MinBrushWidth, MaxBrushWidth].
func ClampBrushWidth(n int) int {
	if n < MinBrushWidth {
		return MinBrushWidth
	}
	if n > MaxBrushWidth {
		return MaxBrushWidth
	}
	return n
}

// PendingText is text waiting for a click to be placed.
type PendingText struct {
	Text     string
	FontSpec string
	Face     font.Face
}

// ColorResult is the outcome of a color chooser. OK is false when the
// chooser was dismissed, which is distinct from choosing black.
type ColorResult struct {
	Color color.RGBA
	OK    bool
}

// Chosen wraps a confirmed color.
func Chosen(c color.RGBA) ColorResult { return ColorResult{Color: c, OK: true} }

// ToolState is the single mutable record of tool settings for a session.
type ToolState struct {
	Tool          Tool
	PenColor      color.RGBA
	SavedPenColor color.RGBA
	Background    color.RGBA
	BrushWidth    int
	FontSpec      string
	Pending       *PendingText

	// base is the brush or eraser mode one-shot tools return to.
	base Tool
}

// NewToolState returns a brush-mode state.
func NewToolState(pen, background color.RGBA, width int, fontSpec string) *ToolState {
	pen.A = 255
	background.A = 255
	return &ToolState{
		Tool:          ToolBrush,
		PenColor:      pen,
		SavedPenColor: pen,
		Background:    background,
		BrushWidth:    ClampBrushWidth(width),
		FontSpec:      fontSpec,
		base:          ToolBrush,
	}
}

// Erasing reports whether the eraser is the underlying drawing mode, even
// while a one-shot tool is armed on top of it.
func (s *ToolState) Erasing() bool { return s.base == ToolEraser }

// Drawing reports whether drags should lay down strokes. Armed text only
// claims the next click, so drags keep stroking with the base tool.
func (s *ToolState) Drawing() bool { return s.Tool != ToolColorPicker }

func (s *ToolState) revert() {
	if s.Pending != nil {
		s.Tool = ToolTextPlacement
		return
	}
	s.Tool = s.base
}

// StrokeCursor remembers the previous drag sample of the stroke in
// progress.
type StrokeCursor struct {
	last  image.Point
	valid bool
}

// Reset forgets the previous sample.
func (c *StrokeCursor) Reset() { c.valid = false }

// Advance records p and returns the previous sample, if any.
func (c *StrokeCursor) Advance(p image.Point) (image.Point, bool) {
	prev, ok := c.last, c.valid
	c.last, c.valid = p, true
	return prev, ok
}

// Last returns the most recent sample.
func (c *StrokeCursor) Last() (image.Point, bool) { return c.last, c.valid }
