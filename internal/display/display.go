// Package display provides the interactive preview side of a drawing
// session. A Surface mirrors what the canvas looks like and routes pointer
// input back to whoever bound handlers on it; it is never read back for
// export.
package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Surface is the on-screen mirror of a canvas.
type Surface interface {
	// Clear removes everything shown and resets to bg.
	Clear(bg color.RGBA)
	// SetBackground records bg for later clears without touching pixels.
	SetBackground(bg color.RGBA)
	DrawLineLive(p0, p1 image.Point, col color.RGBA, width int)
	DrawTextLive(pos image.Point, text string, col color.RGBA, face font.Face)
	// ShowImage replaces the visible content with img placed at anchor.
	ShowImage(img image.Image, anchor image.Point)
	// BindPointerHandlers replaces any previously bound pointer handlers.
	BindPointerHandlers(onDrag, onPress, onRelease func(image.Point))
	// BindClickHandler replaces any previously bound click handler.
	BindClickHandler(onClick func(image.Point))
}

// Handlers stores bound callbacks and turns raw pointer events into
// press, drag, release and click notifications. A click is a press
// followed by a release with no drag in between.
type Handlers struct {
	onDrag    func(image.Point)
	onPress   func(image.Point)
	onRelease func(image.Point)
	onClick   func(image.Point)

	pressed bool
	dragged bool
}

// BindPointerHandlers implements Surface.
func (h *Handlers) BindPointerHandlers(onDrag, onPress, onRelease func(image.Point)) {
	h.onDrag = onDrag
	h.onPress = onPress
	h.onRelease = onRelease
}

// BindClickHandler implements Surface.
func (h *Handlers) BindClickHandler(onClick func(image.Point)) {
	h.onClick = onClick
}

// Pressed reports whether a button is currently held.
func (h *Handlers) Pressed() bool { return h.pressed }

// Press delivers a button press at p.
func (h *Handlers) Press(p image.Point) {
	h.pressed = true
	h.dragged = false
	if h.onPress != nil {
		h.onPress(p)
	}
}

// Drag delivers pointer motion. Motion without a held button is ignored.
func (h *Handlers) Drag(p image.Point) {
	if !h.pressed {
		return
	}
	h.dragged = true
	if h.onDrag != nil {
		h.onDrag(p)
	}
}

// Release delivers a button release at p and fires the click handler when
// the pointer did not move while held.
func (h *Handlers) Release(p image.Point) {
	if !h.pressed {
		return
	}
	h.pressed = false
	if h.onRelease != nil {
		h.onRelease(p)
	}
	if !h.dragged && h.onClick != nil {
		h.onClick(p)
	}
	h.dragged = false
}

// Nop is a Surface that shows nothing. Pointer routing still works so
// headless callers can drive a controller through it.
type Nop struct {
	Handlers
}

// NewNop returns a headless surface.
func NewNop() *Nop { return &Nop{} }

func (*Nop) Clear(color.RGBA) {}
func (*Nop) SetBackground(color.RGBA) {}
func (*Nop) DrawLineLive(image.Point, image.Point, color.RGBA, int) {}
func (*Nop) DrawTextLive(image.Point, string, color.RGBA, font.Face) {}
func (*Nop) ShowImage(image.Image, image.Point) {}

var (
	_ Surface = (*Nop)(nil)
	_ Surface = (*Mirror)(nil)
)
