package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPNGHelpersRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{9, 8, 7, 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	got, err := decodePNG(data)
	if err != nil {
		t.Fatal(err)
	}
	if c := color.RGBAModel.Convert(got.At(2, 1)).(color.RGBA); c != (color.RGBA{9, 8, 7, 255}) {
		t.Fatalf("pixel = %v", c)
	}
}

func TestDecodePNGEmpty(t *testing.T) {
	if _, err := decodePNG(nil); !errors.Is(err, errNoImage) {
		t.Fatalf("err = %v", err)
	}
	if _, err := decodePNG([]byte("nope")); err == nil {
		t.Fatal("expected decode error")
	}
}
