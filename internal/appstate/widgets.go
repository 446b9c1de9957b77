package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/sketchpad/internal/theme"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	// StateActive marks the button of the current tool or width preset.
	StateActive
	buttonStates
)

// Button is a rectangular widget that knows how to draw itself.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states until
// the button moves.
type CacheButton struct {
	Button
	cache [buttonStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	r := cb.Button.Rect()
	if r.Empty() {
		return
	}
	if cb.cache[state] == nil {
		img := image.NewRGBA(r)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, r, cb.cache[state], r.Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [buttonStates]*image.RGBA{}
	}
}

// ToolButton is a bordered toolbar button with a text label.
type ToolButton struct {
	label string
	theme *theme.Theme
	rect  image.Rectangle
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	th := tb.theme
	c := th.ButtonBackground
	switch state {
	case StateHover:
		c = th.ButtonBackgroundHover
	case StatePressed:
		c = th.ButtonBackgroundPress
	case StateActive:
		c = th.ButtonBackgroundActive
	}
	fillRect(dst, tb.rect, c)
	strokeRect(dst, tb.rect, th.ButtonBorder)
	drawLabel(dst, tb.label, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+(tb.rect.Dy()+9)/2), th.ButtonText)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

// Shortcut is a flat status bar entry naming a key binding.
type Shortcut struct {
	label string
	theme *theme.Theme
	rect  image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	th := s.theme
	c := th.StatusBackground
	if state == StateHover {
		c = th.ButtonBackgroundHover
	}
	fillRect(dst, s.rect, c)
	if state == StateHover {
		strokeRect(dst, s.rect, th.ButtonBorder)
	}
	drawLabel(dst, s.label, image.Pt(s.rect.Min.X+2, s.rect.Min.Y+14), th.StatusText)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

const knobRadius = 6

// Slider maps horizontal pointer positions inside Rect onto [Min, Max].
// A press near the track grabs the knob; it follows the pointer until
// Release.
type Slider struct {
	Rect     image.Rectangle
	Min, Max int
	active   bool
}

func (s *Slider) valueAt(x int) int {
	span := s.Rect.Dx() - 1
	if span <= 0 || s.Max <= s.Min {
		return s.Min
	}
	t := float64(x-s.Rect.Min.X) / float64(span)
	t = math.Max(0, math.Min(1, t))
	return s.Min + int(math.Round(t*float64(s.Max-s.Min)))
}

func (s *Slider) knobX(v int) int {
	if s.Max <= s.Min {
		return s.Rect.Min.X
	}
	v = max(s.Min, min(s.Max, v))
	return s.Rect.Min.X + (v-s.Min)*(s.Rect.Dx()-1)/(s.Max-s.Min)
}

// Press grabs the knob when p lies on the track.
func (s *Slider) Press(p image.Point) (int, bool) {
	if !p.In(s.Rect.Inset(-knobRadius)) {
		return 0, false
	}
	s.active = true
	return s.valueAt(p.X), true
}

// Drag reports the value under p while the knob is held.
func (s *Slider) Drag(p image.Point) (int, bool) {
	if !s.active {
		return 0, false
	}
	return s.valueAt(p.X), true
}

func (s *Slider) Release() { s.active = false }

// Active reports whether the knob is held.
func (s *Slider) Active() bool { return s.active }

// Draw renders the track and the knob at value.
func (s *Slider) Draw(dst *image.RGBA, value int, th *theme.Theme, hover bool) {
	mid := (s.Rect.Min.Y + s.Rect.Max.Y) / 2
	fillRect(dst, image.Rect(s.Rect.Min.X, mid-2, s.Rect.Max.X, mid+2), th.Separator)
	fillRect(dst, image.Rect(s.Rect.Min.X, mid-2, s.knobX(value), mid+2), th.Accent)
	knob := th.ButtonBackground
	if hover || s.active {
		knob = th.ButtonBackgroundHover
	}
	dc := gg.NewContextForRGBA(dst)
	dc.DrawCircle(float64(s.knobX(value))+0.5, float64(mid)+0.5, knobRadius)
	dc.SetColor(knob)
	dc.FillPreserve()
	dc.SetColor(th.Accent)
	dc.SetLineWidth(1.5)
	dc.Stroke()
}

var labelFace font.Face = basicfont.Face7x13

func drawLabel(dst draw.Image, s string, baseline image.Point, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: labelFace, Dot: fixed.P(baseline.X, baseline.Y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	return font.MeasureString(labelFace, s).Ceil()
}

func fillRect(dst draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func strokeRect(dst draw.Image, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}
