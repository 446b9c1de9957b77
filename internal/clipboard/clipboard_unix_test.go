//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func TestBackendsNeedADisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	reset := func() {
		initOnce = sync.Once{}
		initErr = nil
	}
	check := func(name string, err error) {
		t.Helper()
		if !errors.Is(err, errNoDisplay) {
			t.Errorf("%s without a display: err = %v, want errNoDisplay", name, err)
		}
	}

	reset()
	check("WriteImage", WriteImage(image.NewRGBA(image.Rect(0, 0, 2, 2))))
	reset()
	_, err := ReadImage()
	check("ReadImage", err)
	reset()
	check("WriteText", WriteText("sketch"))
	reset()
	_, err = ReadText()
	check("ReadText", err)
}
