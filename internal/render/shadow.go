// Package render draws decorations around the canvas in the window.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by the canvas.
type ShadowOptions struct {
	Radius int
	Offset image.Point
	// Color is the shadow tint; its alpha is the peak opacity.
	Color color.RGBA
}

// ShadowResult captures the output of DropShadow.
type ShadowResult struct {
	// Image holds only the shadow; the caster itself is not drawn.
	Image *image.RGBA
	// Offset is where the caster's top-left corner lies inside Image.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow that suits a page on a grey
// desk.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 10,
		Offset: image.Pt(5, 5),
		Color:  color.RGBA{0, 0, 0, 140},
	}
}

// DropShadow renders the blurred shadow of an opaque rectangle of the given
// size. The result has a zero origin.
func DropShadow(size image.Point, opts ShadowOptions) ShadowResult {
	if size.X <= 0 || size.Y <= 0 || opts.Color.A == 0 {
		return ShadowResult{}
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	caster := image.Rectangle{Max: size}
	padded := caster.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	union := caster.Union(shadow)

	mask := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(mask, image.Rectangle{Min: image.Pt(radius, radius), Max: image.Pt(radius+size.X, radius+size.Y)}, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)

	dst := image.NewRGBA(union.Sub(union.Min))
	tint := opts.Color
	tint.A = 255
	draw.DrawMask(dst, blurred.Bounds().Add(shadow.Min.Sub(union.Min)), image.NewUniform(tint), image.Point{}, scaleAlpha(blurred, opts.Color.A), image.Point{}, draw.Over)

	return ShadowResult{Image: dst, Offset: caster.Min.Sub(union.Min)}
}

func scaleAlpha(g *image.Gray, peak uint8) *image.Alpha {
	out := image.NewAlpha(g.Bounds())
	for i, v := range g.Pix {
		out.Pix[i] = uint8(int(v) * int(peak) / 255)
	}
	return out
}

// ShadowCache keeps the last shadow so redraws at the same size are free.
type ShadowCache struct {
	Options ShadowOptions

	size   image.Point
	result ShadowResult
}

// For returns the shadow for a caster of the given size.
func (c *ShadowCache) For(size image.Point) ShadowResult {
	if c.result.Image == nil || c.size != size {
		c.result = DropShadow(size, c.Options)
		c.size = size
	}
	return c.result
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	boxAverage := func(get func(int) int, set func(int, uint8), n int) {
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + get(i)
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			set(i, uint8((prefix[hi+1]-prefix[lo])/(hi-lo+1)))
		}
	}

	for y := 0; y < h; y++ {
		row := y * src.Stride
		boxAverage(
			func(x int) int { return int(src.Pix[row+x]) },
			func(x int, v uint8) { tmp.Pix[y*tmp.Stride+x] = v },
			w,
		)
	}
	for x := 0; x < w; x++ {
		boxAverage(
			func(y int) int { return int(tmp.Pix[y*tmp.Stride+x]) },
			func(y int, v uint8) { dst.Pix[y*dst.Stride+x] = v },
			h,
		)
	}
	return dst
}
