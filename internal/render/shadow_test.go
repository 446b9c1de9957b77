package render

import (
	"image"
	"image/color"
	"testing"
)

func TestDropShadowBounds(t *testing.T) {
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Color: color.RGBA{A: 128}}
	out := DropShadow(image.Pt(10, 10), opts)
	if out.Image == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Image.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Image.Bounds(), expected)
	}
	if out.Offset != (image.Point{}) {
		t.Fatalf("caster offset = %v", out.Offset)
	}
	// Under the middle of the offset caster the shadow is at full strength.
	if a := out.Image.RGBAAt(13, 11).A; a < 120 {
		t.Fatalf("expected dense shadow, alpha=%d", a)
	}
	if a := out.Image.RGBAAt(0, 19).A; a != 0 {
		t.Fatalf("expected no shadow in the far corner, alpha=%d", a)
	}
}

func TestDropShadowNegativeOffset(t *testing.T) {
	out := DropShadow(image.Pt(10, 10), ShadowOptions{Radius: 2, Offset: image.Pt(-5, -3), Color: color.RGBA{A: 255}})
	if out.Offset != image.Pt(7, 5) {
		t.Fatalf("caster offset = %v, want (7,5)", out.Offset)
	}
	if out.Image.Bounds().Min != (image.Point{}) {
		t.Fatalf("non-zero origin %v", out.Image.Bounds())
	}
}

func TestDropShadowDisabled(t *testing.T) {
	if out := DropShadow(image.Pt(4, 4), ShadowOptions{Radius: 12, Color: color.RGBA{}}); out.Image != nil {
		t.Fatal("expected no image for transparent shadow")
	}
	if out := DropShadow(image.Point{}, DefaultShadowOptions()); out.Image != nil {
		t.Fatal("expected no image for empty caster")
	}
}

func TestBlurSpreadsAlpha(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 9, 1))
	src.Pix[4] = 255
	out := blurGray(src, 2)
	if out.Pix[4] == 0 || out.Pix[2] == 0 || out.Pix[6] == 0 {
		t.Fatalf("blur did not spread: %v", out.Pix)
	}
	if out.Pix[0] != 0 || out.Pix[8] != 0 {
		t.Fatalf("blur spread too far: %v", out.Pix)
	}
}

func TestShadowCacheReuses(t *testing.T) {
	c := ShadowCache{Options: DefaultShadowOptions()}
	a := c.For(image.Pt(30, 20))
	b := c.For(image.Pt(30, 20))
	if a.Image != b.Image {
		t.Fatal("expected cached image")
	}
	d := c.For(image.Pt(31, 20))
	if d.Image == a.Image {
		t.Fatal("expected new image after size change")
	}
}
