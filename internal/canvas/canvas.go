// Package canvas holds the authoritative raster image behind a drawing
// session. Everything that is exported, sampled or copied comes from here;
// on-screen surfaces are only previews of this buffer.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	// ErrOutOfBounds is returned when sampling outside the canvas.
	ErrOutOfBounds = errors.New("point outside canvas")
	// ErrInvalidDimensions is returned for non-positive or oversized canvases.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")
)

// MaxDimension bounds either side of a canvas.
const MaxDimension = 16384

// Canvas is an opaque RGB raster. The zero value is not usable; create one
// with New or FromImage.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

// New returns a canvas of the given size filled with bg.
func New(width, height int, bg color.RGBA) (*Canvas, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	c := &Canvas{}
	c.reset(image.NewRGBA(image.Rect(0, 0, width, height)))
	fill(c.img, bg)
	return c, nil
}

// FromImage returns a canvas holding a copy of src rebased to the origin.
// Transparent areas of src are composited over white.
func FromImage(src image.Image) (*Canvas, error) {
	b := src.Bounds()
	c, err := New(b.Dx(), b.Dy(), color.RGBA{255, 255, 255, 255})
	if err != nil {
		return nil, err
	}
	draw.Draw(c.img, c.img.Bounds(), src, b.Min, draw.Over)
	return c, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxDimension)
	}
	return nil
}

func (c *Canvas) reset(img *image.RGBA) {
	c.img = img
	c.dc = gg.NewContextForRGBA(img)
}

func fill(img *image.RGBA, col color.RGBA) {
	col.A = 255
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Bounds returns the canvas rectangle, always anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image exposes the live pixel grid. Callers must not retain it across
// Resize or Clear, which swap the grid.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Snapshot returns a deep copy of the pixel grid.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// Clear replaces the pixel grid with a fresh one of the same size.
func (c *Canvas) Clear(bg color.RGBA) {
	c.reset(image.NewRGBA(c.img.Bounds()))
	fill(c.img, bg)
}

// Resize rescales the whole content to the new dimensions. Nothing is
// cropped; the old grid is discarded.
func (c *Canvas) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	opaque(dst)
	c.reset(dst)
	return nil
}

// opaque forces full alpha; resampling kernels can undershoot at the edges.
func opaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}

// At returns the color at (x, y).
func (c *Canvas) At(x, y int) (color.RGBA, error) {
	if !image.Pt(x, y).In(c.img.Bounds()) {
		return color.RGBA{}, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, c.Width(), c.Height())
	}
	return c.img.RGBAAt(x, y), nil
}

// DrawLine strokes a round-capped segment of the given width between p0 and
// p1. Pixel coordinates address pixel centres. Anything outside the canvas
// is clipped.
func (c *Canvas) DrawLine(p0, p1 image.Point, col color.RGBA, width int) {
	StrokeSegment(c.dc, p0, p1, col, width)
}

// StrokeSegment draws a capsule between two pixel positions on dc. It is
// shared with display surfaces so previews match the buffer.
func StrokeSegment(dc *gg.Context, p0, p1 image.Point, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	col.A = 255
	dc.SetColor(col)
	x0, y0 := float64(p0.X)+0.5, float64(p0.Y)+0.5
	if p0 == p1 {
		dc.DrawCircle(x0, y0, float64(width)/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(float64(width))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.DrawLine(x0, y0, float64(p1.X)+0.5, float64(p1.Y)+0.5)
	dc.Stroke()
}

// DrawText renders text with its top-left corner at pos.
func (c *Canvas) DrawText(pos image.Point, text string, col color.RGBA, face font.Face) {
	DrawString(c.img, pos, text, col, face)
}

// DrawString renders text on dst with its top-left corner at pos.
func DrawString(dst draw.Image, pos image.Point, text string, col color.RGBA, face font.Face) {
	col.A = 255
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(pos.X, pos.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// MeasureText returns the bounding box size of text rendered with face.
func MeasureText(text string, face font.Face) image.Point {
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return image.Pt(d.MeasureString(text).Ceil(), m.Ascent.Ceil()+m.Descent.Ceil())
}

// Paste composites src onto the canvas with src's top-left corner at
// offset. Parts falling outside the canvas are dropped.
func (c *Canvas) Paste(src image.Image, offset image.Point) {
	sb := src.Bounds()
	dst := sb.Sub(sb.Min).Add(offset).Intersect(c.img.Bounds())
	if dst.Empty() {
		return
	}
	sp := sb.Min.Add(dst.Min.Sub(offset))
	draw.Draw(c.img, dst, src, sp, draw.Over)
}

// Export writes the canvas to path in the format implied by its extension.
// The write is atomic: on failure the destination is left untouched.
func (c *Canvas) Export(path string) error {
	return WriteFile(path, c.img)
}
