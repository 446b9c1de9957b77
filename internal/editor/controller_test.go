package editor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/display"
	"golang.org/x/image/font"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 128, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

type segment struct {
	P0, P1 image.Point
	Color  color.RGBA
	Width  int
}

type textCall struct {
	Pos   image.Point
	Text  string
	Color color.RGBA
}

// recorder is a Surface that remembers what it was asked to draw.
type recorder struct {
	display.Handlers
	calls    []string
	segments []segment
	texts    []textCall
	bg       color.RGBA
}

func (r *recorder) Clear(bg color.RGBA) {
	r.calls = append(r.calls, "clear")
	r.bg = bg
}

func (r *recorder) SetBackground(bg color.RGBA) { r.bg = bg }

func (r *recorder) DrawLineLive(p0, p1 image.Point, col color.RGBA, width int) {
	r.calls = append(r.calls, "line")
	r.segments = append(r.segments, segment{p0, p1, col, width})
}

func (r *recorder) DrawTextLive(pos image.Point, text string, col color.RGBA, _ font.Face) {
	r.calls = append(r.calls, "text")
	r.texts = append(r.texts, textCall{pos, text, col})
}

func (r *recorder) ShowImage(image.Image, image.Point) {
	r.calls = append(r.calls, "show")
}

func newTestController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	c, err := canvas.New(600, 400, white)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	ctl := NewController(c, rec, NewToolState(black, white, 5, ""))
	ctl.OnError = func(err error) { t.Errorf("unexpected error: %v", err) }
	return ctl, rec
}

func mustAt(t *testing.T, c *canvas.Canvas, x, y int) color.RGBA {
	t.Helper()
	col, err := c.At(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return col
}

func TestDragSamplesDrawConsecutiveSegments(t *testing.T) {
	for n := 0; n <= 6; n++ {
		ctl, rec := newTestController(t)
		var pts []image.Point
		for i := 0; i < n; i++ {
			pts = append(pts, image.Pt(20+i*7, 30+i*3))
		}
		rec.Press(image.Pt(20, 30))
		for _, p := range pts {
			rec.Drag(p)
		}
		rec.Release(image.Pt(0, 0))

		want := n - 1
		if want < 0 {
			want = 0
		}
		if len(rec.segments) != want {
			t.Fatalf("n=%d: %d segments, want %d", n, len(rec.segments), want)
		}
		for i, s := range rec.segments {
			if s.P0 != pts[i] || s.P1 != pts[i+1] {
				t.Fatalf("n=%d: segment %d = %v->%v, want %v->%v", n, i, s.P0, s.P1, pts[i], pts[i+1])
			}
			if s.Color != black || s.Width != 5 {
				t.Fatalf("segment style = %+v", s)
			}
		}
		if _, ok := ctl.Cursor.Last(); ok {
			t.Fatalf("cursor not reset after release")
		}
	}
}

func TestPressReleaseDrawsNothing(t *testing.T) {
	ctl, rec := newTestController(t)
	before := ctl.Canvas.Snapshot()
	rec.Press(image.Pt(100, 100))
	rec.Release(image.Pt(100, 100))
	if len(rec.segments) != 0 {
		t.Fatalf("drew %d segments", len(rec.segments))
	}
	after := ctl.Canvas.Image()
	for i := range before.Pix {
		if before.Pix[i] != after.Pix[i] {
			t.Fatal("canvas changed on click")
		}
	}
}

func TestStrokesDoNotJoinAcrossRelease(t *testing.T) {
	_, rec := newTestController(t)
	rec.Press(image.Pt(0, 0))
	rec.Drag(image.Pt(10, 10))
	rec.Drag(image.Pt(20, 10))
	rec.Release(image.Pt(20, 10))
	rec.Press(image.Pt(200, 200))
	rec.Drag(image.Pt(200, 200))
	rec.Drag(image.Pt(210, 200))
	rec.Release(image.Pt(210, 200))
	if len(rec.segments) != 2 {
		t.Fatalf("segments = %v", rec.segments)
	}
	if rec.segments[1].P0 != image.Pt(200, 200) {
		t.Fatalf("second stroke joined the first: %v", rec.segments[1])
	}
}

func TestRedVerticalStrokeScenario(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.ChooseColor(Chosen(red))
	ctl.SetBrushWidth(5)
	rec.Press(image.Pt(10, 10))
	for y := 10; y <= 50; y += 10 {
		rec.Drag(image.Pt(10, y))
	}
	rec.Release(image.Pt(10, 50))
	for y := 10; y <= 50; y += 5 {
		if got := mustAt(t, ctl.Canvas, 10, y); got != red {
			t.Fatalf("(10,%d) = %v, want red", y, got)
		}
	}
	if got := mustAt(t, ctl.Canvas, 300, 300); got != white {
		t.Fatalf("(300,300) = %v, want white", got)
	}
}

func TestChooseColorCancelledLeavesState(t *testing.T) {
	ctl, _ := newTestController(t)
	ctl.ChooseColor(Chosen(green))
	ctl.SelectEraser()
	before := *ctl.State
	ctl.ChooseColor(ColorResult{})
	if *ctl.State != before {
		t.Fatalf("state changed: %+v vs %+v", *ctl.State, before)
	}
	ctl.ChooseBackground(ColorResult{Color: red})
	if *ctl.State != before {
		t.Fatalf("cancelled background changed state")
	}
}

func TestChooseColorBlackIsNotCancel(t *testing.T) {
	ctl, _ := newTestController(t)
	ctl.ChooseColor(Chosen(green))
	ctl.ChooseColor(Chosen(black))
	if ctl.State.PenColor != black || ctl.State.SavedPenColor != black {
		t.Fatalf("black not applied: %+v", ctl.State)
	}
}

func TestEraserFollowsBackgroundChange(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.ChooseColor(Chosen(red))
	ctl.SelectEraser()
	ctl.ChooseBackground(Chosen(blue))
	rec.Press(image.Pt(50, 50))
	rec.Drag(image.Pt(50, 50))
	rec.Drag(image.Pt(90, 50))
	rec.Release(image.Pt(90, 50))
	if got := mustAt(t, ctl.Canvas, 70, 50); got != blue {
		t.Fatalf("erased pixel = %v, want new background", got)
	}
	if got := mustAt(t, ctl.Canvas, 5, 5); got != white {
		t.Fatalf("background change repainted canvas: %v", got)
	}
	if rec.bg != blue {
		t.Fatalf("surface background = %v", rec.bg)
	}
	ctl.SelectBrush()
	if ctl.State.PenColor != red {
		t.Fatalf("brush did not restore saved pen: %v", ctl.State.PenColor)
	}
}

func TestBackgroundChangeWhileBrushKeepsPen(t *testing.T) {
	ctl, _ := newTestController(t)
	ctl.ChooseColor(Chosen(red))
	ctl.ChooseBackground(Chosen(blue))
	if ctl.State.PenColor != red {
		t.Fatalf("pen = %v, want red", ctl.State.PenColor)
	}
}

func TestPickColorWhileErasingChangesSavedPen(t *testing.T) {
	ctl, _ := newTestController(t)
	ctl.ChooseColor(Chosen(red))
	ctl.Canvas.DrawLine(image.Pt(5, 5), image.Pt(5, 5), green, 6)
	ctl.SelectEraser()
	if err := ctl.PickColorAt(image.Pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if ctl.State.Tool != ToolEraser {
		t.Fatalf("tool = %v", ctl.State.Tool)
	}
	if ctl.State.PenColor != green || ctl.State.SavedPenColor != green {
		t.Fatalf("pick did not set both colors: %+v", ctl.State)
	}
	ctl.SelectBrush()
	if ctl.State.PenColor != green {
		t.Fatalf("brush pen = %v, want picked color", ctl.State.PenColor)
	}
}

func TestPickColorOutOfBounds(t *testing.T) {
	ctl, _ := newTestController(t)
	before := *ctl.State
	err := ctl.PickColorAt(image.Pt(600, 10))
	if !errors.Is(err, canvas.ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	if *ctl.State != before {
		t.Fatal("state changed")
	}
}

func TestColorPickerClickRevertsTool(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.Canvas.DrawLine(image.Pt(40, 40), image.Pt(40, 40), blue, 8)
	ctl.SelectEraser()
	ctl.ArmColorPicker()
	rec.Press(image.Pt(40, 40))
	rec.Drag(image.Pt(41, 40))
	rec.Drag(image.Pt(42, 40))
	rec.Release(image.Pt(42, 40))
	if len(rec.segments) != 0 {
		t.Fatal("picker drag drew segments")
	}
	if ctl.State.Tool != ToolColorPicker {
		t.Fatal("drag consumed the picker")
	}
	rec.Press(image.Pt(40, 40))
	rec.Release(image.Pt(40, 40))
	if ctl.State.Tool != ToolEraser {
		t.Fatalf("tool = %v, want eraser", ctl.State.Tool)
	}
	if ctl.State.PenColor != blue {
		t.Fatalf("pen = %v", ctl.State.PenColor)
	}
}

func TestTextFollowsPenColor(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.ChooseColor(Chosen(blue))
	if err := ctl.BeginTextInsertion("Hi", "Go 32"); err != nil {
		t.Fatal(err)
	}
	if ctl.State.Tool != ToolTextPlacement || ctl.State.Pending == nil {
		t.Fatalf("text not armed: %+v", ctl.State)
	}
	rec.Press(image.Pt(50, 50))
	rec.Release(image.Pt(50, 50))
	if len(rec.texts) != 1 || rec.texts[0].Color != blue || rec.texts[0].Pos != image.Pt(50, 50) {
		t.Fatalf("surface text = %+v", rec.texts)
	}
	var sawBlue bool
	img := ctl.Canvas.Image()
	for y := 50; y < 90 && !sawBlue; y++ {
		for x := 50; x < 100; x++ {
			px := img.RGBAAt(x, y)
			if px == blue {
				sawBlue = true
				break
			}
			if px == black {
				t.Fatalf("black text pixel at (%d,%d)", x, y)
			}
		}
	}
	if !sawBlue {
		t.Fatal("no blue text pixels on canvas")
	}
	if ctl.State.Pending != nil || ctl.State.Tool != ToolBrush {
		t.Fatalf("text not disarmed: %+v", ctl.State)
	}
	// The next click places nothing.
	rec.Press(image.Pt(10, 10))
	rec.Release(image.Pt(10, 10))
	if len(rec.texts) != 1 {
		t.Fatal("text placed twice")
	}
}

func TestTextInsertionOverwritesAndDragStillStrokes(t *testing.T) {
	ctl, rec := newTestController(t)
	if err := ctl.BeginTextInsertion("first", ""); err != nil {
		t.Fatal(err)
	}
	if err := ctl.BeginTextInsertion("second", "Go Mono 12"); err != nil {
		t.Fatal(err)
	}
	pts := []image.Point{{10, 50}, {30, 50}, {50, 50}, {70, 50}, {90, 50}}
	rec.Press(pts[0])
	for _, p := range pts {
		rec.Drag(p)
	}
	rec.Release(pts[len(pts)-1])
	if len(rec.texts) != 0 {
		t.Fatal("drag committed text")
	}
	if len(rec.segments) != len(pts)-1 {
		t.Fatalf("segments = %d, want %d", len(rec.segments), len(pts)-1)
	}
	if got := mustAt(t, ctl.Canvas, 50, 50); got != black {
		t.Fatalf("stroke pixel = %v", got)
	}
	if ctl.State.Pending == nil || ctl.State.Tool != ToolTextPlacement {
		t.Fatal("drag disarmed the text")
	}
	rec.Press(image.Pt(5, 5))
	rec.Release(image.Pt(5, 5))
	if len(rec.texts) != 1 || rec.texts[0].Text != "second" {
		t.Fatalf("texts = %+v", rec.texts)
	}
	if ctl.State.FontSpec != "Go Mono 12" {
		t.Fatalf("font = %q", ctl.State.FontSpec)
	}
}

func TestTextStaysArmedAcrossToolSelection(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.ChooseColor(Chosen(blue))
	if err := ctl.BeginTextInsertion("Hi", "Go 24"); err != nil {
		t.Fatal(err)
	}
	ctl.SelectEraser()
	ctl.SelectBrush()
	if ctl.State.Pending == nil || ctl.State.Tool != ToolTextPlacement {
		t.Fatalf("tool selection disarmed text: %+v", ctl.State)
	}
	rec.Press(image.Pt(20, 20))
	rec.Release(image.Pt(20, 20))
	if len(rec.texts) != 1 || rec.texts[0].Text != "Hi" || rec.texts[0].Color != blue {
		t.Fatalf("texts = %+v", rec.texts)
	}
	found := false
	img := ctl.Canvas.Image()
	for y := 20; y < 50 && !found; y++ {
		for x := 20; x < 60; x++ {
			if img.RGBAAt(x, y) == blue {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no text pixels on the canvas")
	}
	if ctl.State.Pending != nil || ctl.State.Tool != ToolBrush {
		t.Fatalf("state after commit = %+v", ctl.State)
	}
}

func TestBeginTextInsertionBadFont(t *testing.T) {
	ctl, _ := newTestController(t)
	before := *ctl.State
	if err := ctl.BeginTextInsertion("x", "Wingdings 12"); !errors.Is(err, canvas.ErrInvalidFont) {
		t.Fatalf("err = %v", err)
	}
	if *ctl.State != before {
		t.Fatal("state changed")
	}
}

func TestSetBrushWidthClamps(t *testing.T) {
	ctl, _ := newTestController(t)
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 7: 7, 20: 20, 21: 20, 100: 20} {
		if got := ctl.SetBrushWidth(in); got != want || ctl.State.BrushWidth != want {
			t.Errorf("SetBrushWidth(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestResize(t *testing.T) {
	ctl, rec := newTestController(t)
	rec.calls = nil
	if err := ctl.ResizeFromInput("300x200"); err != nil {
		t.Fatal(err)
	}
	if ctl.Canvas.Width() != 300 || ctl.Canvas.Height() != 200 {
		t.Fatalf("size = %dx%d", ctl.Canvas.Width(), ctl.Canvas.Height())
	}
	if len(rec.calls) != 1 || rec.calls[0] != "show" {
		t.Fatalf("surface not rebuilt: %v", rec.calls)
	}
	for _, in := range []string{"", "abc", "10", "0 10", "-5 5", "1 2 3", "99999 10"} {
		err := ctl.ResizeFromInput(in)
		var de *InvalidDimensionsError
		if !errors.As(err, &de) {
			t.Errorf("ResizeFromInput(%q) err = %v", in, err)
		}
		if ctl.Canvas.Width() != 300 || ctl.Canvas.Height() != 200 {
			t.Fatalf("canvas changed after %q", in)
		}
	}
}

func TestClearUsesCurrentBackground(t *testing.T) {
	ctl, rec := newTestController(t)
	ctl.Canvas.DrawLine(image.Pt(1, 1), image.Pt(100, 100), red, 9)
	ctl.ChooseBackground(Chosen(green))
	ctl.Clear()
	if got := mustAt(t, ctl.Canvas, 50, 50); got != green {
		t.Fatalf("after clear = %v", got)
	}
	if rec.calls[len(rec.calls)-1] != "clear" || rec.bg != green {
		t.Fatalf("surface not cleared: %v", rec.calls)
	}
	if ctl.Canvas.Width() != 600 {
		t.Fatal("clear changed size")
	}
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
	}{
		{"800 600", 800, 600},
		{"800x600", 800, 600},
		{" 800 X 600 ", 800, 600},
		{"800,600", 800, 600},
		{"800, 600", 800, 600},
	}
	for _, tt := range tests {
		w, h, err := ParseDimensions(tt.in)
		if err != nil || w != tt.w || h != tt.h {
			t.Errorf("ParseDimensions(%q) = %d,%d,%v", tt.in, w, h, err)
		}
	}
}
