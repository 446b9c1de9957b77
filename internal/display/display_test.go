package display

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/sketchpad/internal/canvas"
)

type pointerLog struct {
	events []string
	points []image.Point
}

func (l *pointerLog) bind(s Surface) {
	rec := func(name string) func(image.Point) {
		return func(p image.Point) {
			l.events = append(l.events, name)
			l.points = append(l.points, p)
		}
	}
	s.BindPointerHandlers(rec("drag"), rec("press"), rec("release"))
	s.BindClickHandler(rec("click"))
}

func TestHandlersClickWithoutDrag(t *testing.T) {
	n := NewNop()
	var l pointerLog
	l.bind(n)
	n.Press(image.Pt(3, 4))
	n.Release(image.Pt(3, 4))
	want := []string{"press", "release", "click"}
	if len(l.events) != len(want) {
		t.Fatalf("events = %v, want %v", l.events, want)
	}
	for i := range want {
		if l.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", l.events, want)
		}
	}
	if l.points[2] != image.Pt(3, 4) {
		t.Fatalf("click at %v", l.points[2])
	}
}

func TestHandlersDragSuppressesClick(t *testing.T) {
	n := NewNop()
	var l pointerLog
	l.bind(n)
	n.Drag(image.Pt(1, 1)) // not pressed, ignored
	n.Press(image.Pt(0, 0))
	n.Drag(image.Pt(1, 1))
	n.Drag(image.Pt(2, 2))
	n.Release(image.Pt(2, 2))
	n.Release(image.Pt(2, 2)) // already released, ignored
	want := []string{"press", "drag", "drag", "release"}
	if len(l.events) != len(want) {
		t.Fatalf("events = %v, want %v", l.events, want)
	}
	for i := range want {
		if l.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", l.events, want)
		}
	}
}

func TestHandlersRebindReplaces(t *testing.T) {
	n := NewNop()
	var first, second int
	n.BindClickHandler(func(image.Point) { first++ })
	n.BindClickHandler(func(image.Point) { second++ })
	n.Press(image.Point{})
	n.Release(image.Point{})
	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}

func TestMirrorMatchesCanvas(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{255, 0, 0, 255}
	c, err := canvas.New(64, 32, white)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMirror(64, 32, white)
	m.MarkClean()
	segs := [][2]image.Point{{{2, 2}, {40, 20}}, {{40, 20}, {60, 5}}}
	for _, s := range segs {
		m.DrawLineLive(s[0], s[1], red, 4)
		c.DrawLine(s[0], s[1], red, 4)
	}
	if !m.Dirty() {
		t.Fatal("expected dirty after drawing")
	}
	got, want := m.Image().Pix, c.Image().Pix
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mirror differs from canvas at byte %d: %d vs %d", i, got[i], want[i])
		}
	}
}

func TestMirrorShowImageResizes(t *testing.T) {
	bg := color.RGBA{10, 20, 30, 255}
	m := NewMirror(10, 10, bg)
	src := image.NewRGBA(image.Rect(5, 5, 25, 15))
	src.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})
	m.ShowImage(src, image.Point{})
	if sz := m.Size(); sz != image.Pt(20, 10) {
		t.Fatalf("size = %v, want 20x10", sz)
	}
	if got := m.Image().RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("origin pixel = %v", got)
	}
	if got := m.Image().RGBAAt(10, 5); got != bg {
		t.Fatalf("transparent area = %v, want background", got)
	}
}

func TestMirrorSetBackgroundKeepsPixels(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	m := NewMirror(4, 4, white)
	m.SetBackground(color.RGBA{0, 0, 255, 255})
	if got := m.Image().RGBAAt(1, 1); got != white {
		t.Fatalf("pixels changed: %v", got)
	}
	m.Clear(m.Background())
	if got := m.Image().RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("clear used %v", got)
	}
}
