package editor

import (
	"image"
	"log"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/display"
	"github.com/example/sketchpad/internal/imageio"
)

// Controller routes pointer input and tool commands to the canvas and its
// display surface. Every drawing operation is applied to the surface first
// and then to the canvas, as two separate calls.
type Controller struct {
	State   *ToolState
	Canvas  *canvas.Canvas
	Surface display.Surface
	Cursor  StrokeCursor

	// OnError receives failures from pointer-driven actions, which have no
	// caller to return to. It defaults to logging.
	OnError func(error)
}

// NewController binds s to c and shows the current canvas on it.
func NewController(c *canvas.Canvas, s display.Surface, st *ToolState) *Controller {
	if s == nil {
		s = display.NewNop()
	}
	ctl := &Controller{State: st, Canvas: c, Surface: s}
	s.SetBackground(st.Background)
	ctl.rebind()
	return ctl
}

// rebind rebuilds the surface from the canvas and reattaches handlers.
func (c *Controller) rebind() {
	c.Surface.ShowImage(c.Canvas.Image(), image.Point{})
	c.Surface.BindPointerHandlers(c.Drag, c.Press, c.Release)
	c.Surface.BindClickHandler(c.Click)
}

func (c *Controller) report(err error) {
	if c.OnError != nil {
		c.OnError(err)
		return
	}
	log.Printf("editor: %v", err)
}

// Press starts a new stroke.
func (c *Controller) Press(image.Point) { c.Cursor.Reset() }

// Release ends the current stroke.
func (c *Controller) Release(image.Point) { c.Cursor.Reset() }

// Drag extends the current stroke to p. Only the brush and eraser draw.
func (c *Controller) Drag(p image.Point) {
	if !c.State.Drawing() {
		return
	}
	prev, ok := c.Cursor.Advance(p)
	if !ok {
		return
	}
	c.Surface.DrawLineLive(prev, p, c.State.PenColor, c.State.BrushWidth)
	c.Canvas.DrawLine(prev, p, c.State.PenColor, c.State.BrushWidth)
}

// Click handles a press and release without movement.
func (c *Controller) Click(p image.Point) {
	switch {
	case c.State.Tool == ToolColorPicker:
		if err := c.PickColorAt(p); err != nil {
			c.report(err)
		}
		c.State.revert()
	case c.State.Pending != nil:
		c.commitText(p)
	}
}

func (c *Controller) commitText(p image.Point) {
	pt := c.State.Pending
	c.Surface.DrawTextLive(p, pt.Text, c.State.PenColor, pt.Face)
	c.Canvas.DrawText(p, pt.Text, c.State.PenColor, pt.Face)
	c.State.Pending = nil
	c.State.revert()
}

// SelectBrush switches to the brush and restores the saved pen color.
// Armed text stays armed.
func (c *Controller) SelectBrush() {
	c.State.base = ToolBrush
	c.State.revert()
	c.State.PenColor = c.State.SavedPenColor
}

// SelectEraser switches to the eraser, which paints in the background
// color. The saved pen color is kept for SelectBrush.
func (c *Controller) SelectEraser() {
	c.State.base = ToolEraser
	c.State.revert()
	c.State.PenColor = c.State.Background
}

// ArmColorPicker makes the next click sample the canvas.
func (c *Controller) ArmColorPicker() {
	c.State.Tool = ToolColorPicker
}

// PickColorAt samples the canvas into both the live and saved pen color.
// The active tool is left alone.
func (c *Controller) PickColorAt(p image.Point) error {
	col, err := c.Canvas.At(p.X, p.Y)
	if err != nil {
		return err
	}
	c.State.PenColor = col
	c.State.SavedPenColor = col
	return nil
}

// ChooseColor applies a color chooser result. A dismissed chooser changes
// nothing.
func (c *Controller) ChooseColor(res ColorResult) {
	if !res.OK {
		return
	}
	res.Color.A = 255
	c.State.PenColor = res.Color
	c.State.SavedPenColor = res.Color
}

// ChooseBackground sets the background used by clears and the eraser.
// Pixels already drawn keep their color.
func (c *Controller) ChooseBackground(res ColorResult) {
	if !res.OK {
		return
	}
	res.Color.A = 255
	c.State.Background = res.Color
	c.Surface.SetBackground(res.Color)
	if c.State.Erasing() {
		c.State.PenColor = res.Color
	}
}

// BeginTextInsertion arms text placement. A later request replaces an
// earlier one. Empty text is treated as a dismissed prompt.
func (c *Controller) BeginTextInsertion(text, fontSpec string) error {
	if text == "" {
		return nil
	}
	face, err := canvas.ParseFont(fontSpec)
	if err != nil {
		return err
	}
	if fontSpec == "" {
		fontSpec = canvas.DefaultFont
	}
	c.State.FontSpec = fontSpec
	c.State.Pending = &PendingText{Text: text, FontSpec: fontSpec, Face: face}
	c.State.Tool = ToolTextPlacement
	return nil
}

// SetBrushWidth clamps n to the supported range and returns what was set.
func (c *Controller) SetBrushWidth(n int) int {
	c.State.BrushWidth = ClampBrushWidth(n)
	return c.State.BrushWidth
}

// Resize rescales the canvas and rebuilds the surface.
func (c *Controller) Resize(width, height int) error {
	if err := c.Canvas.Resize(width, height); err != nil {
		return err
	}
	c.Cursor.Reset()
	c.rebind()
	return nil
}

// ResizeFromInput parses prompt text and resizes. Bad input leaves the
// canvas unchanged and returns *InvalidDimensionsError.
func (c *Controller) ResizeFromInput(input string) error {
	w, h, err := ParseDimensions(input)
	if err != nil {
		return err
	}
	if err := c.Resize(w, h); err != nil {
		return &InvalidDimensionsError{Input: input, Reason: err.Error()}
	}
	return nil
}

// Clear wipes both buffers to the current background.
func (c *Controller) Clear() {
	bg := c.State.Background
	c.Canvas.Clear(bg)
	c.Surface.Clear(bg)
	c.Cursor.Reset()
}

// LoadImage decodes path and pastes it at the origin. A failed load leaves
// the canvas untouched.
func (c *Controller) LoadImage(path string) error {
	img, err := imageio.LoadImage(path)
	if err != nil {
		return err
	}
	c.PasteImage(img, image.Point{})
	return nil
}

// PasteImage composites img at offset and rebuilds the surface.
func (c *Controller) PasteImage(img image.Image, offset image.Point) {
	c.Canvas.Paste(img, offset)
	c.rebind()
}

// SaveCanvas exports the canvas and returns the path written.
func (c *Controller) SaveCanvas(path string) (string, error) {
	return imageio.SaveCanvas(c.Canvas, path)
}
