package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Mirror is an RGBA-backed Surface. The window blits Image into each frame
// and uses Dirty to decide when to upload it again.
type Mirror struct {
	Handlers

	img   *image.RGBA
	dc    *gg.Context
	bg    color.RGBA
	dirty bool
}

// NewMirror returns a surface of the given size filled with bg.
func NewMirror(width, height int, bg color.RGBA) *Mirror {
	m := &Mirror{bg: bg}
	m.resize(image.Pt(width, height))
	m.Clear(bg)
	return m
}

func (m *Mirror) resize(sz image.Point) {
	if sz.X < 1 {
		sz.X = 1
	}
	if sz.Y < 1 {
		sz.Y = 1
	}
	m.img = image.NewRGBA(image.Rectangle{Max: sz})
	m.dc = gg.NewContextForRGBA(m.img)
}

// Image returns the pixels currently shown.
func (m *Mirror) Image() *image.RGBA { return m.img }

// Size returns the surface dimensions.
func (m *Mirror) Size() image.Point { return m.img.Bounds().Size() }

// Background returns the color used by Clear.
func (m *Mirror) Background() color.RGBA { return m.bg }

// Dirty reports whether anything was drawn since the last MarkClean.
func (m *Mirror) Dirty() bool { return m.dirty }

// MarkClean resets the dirty flag after the frame has been uploaded.
func (m *Mirror) MarkClean() { m.dirty = false }

// Clear implements Surface.
func (m *Mirror) Clear(bg color.RGBA) {
	m.bg = bg
	bg.A = 255
	draw.Draw(m.img, m.img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	m.dirty = true
}

// SetBackground implements Surface.
func (m *Mirror) SetBackground(bg color.RGBA) { m.bg = bg }

// DrawLineLive implements Surface.
func (m *Mirror) DrawLineLive(p0, p1 image.Point, col color.RGBA, width int) {
	canvas.StrokeSegment(m.dc, p0, p1, col, width)
	m.dirty = true
}

// DrawTextLive implements Surface.
func (m *Mirror) DrawTextLive(pos image.Point, text string, col color.RGBA, face font.Face) {
	canvas.DrawString(m.img, pos, text, col, face)
	m.dirty = true
}

// ShowImage implements Surface. The surface takes the size of img; anything
// previously shown is discarded.
func (m *Mirror) ShowImage(img image.Image, anchor image.Point) {
	b := img.Bounds()
	if m.img.Bounds().Size() != b.Size() {
		m.resize(b.Size())
	}
	bg := m.bg
	bg.A = 255
	draw.Draw(m.img, m.img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(m.img, b.Sub(b.Min).Add(anchor), img, b.Min, draw.Over)
	m.dirty = true
}
