// Package imageio moves images between files and a canvas.
package imageio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/example/sketchpad/internal/canvas"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoPath is returned when a dialog produced no file name.
var ErrNoPath = errors.New("no path selected")

// LoadError reports an unreadable or undecodable input image.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed export. No partial file is left behind.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// LoadImage decodes the image at path. Nothing is returned on failure.
func LoadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return nil, &LoadError{Op: "decode", Path: path, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > canvas.MaxDimension || cfg.Height > canvas.MaxDimension {
		return nil, &LoadError{Op: "decode", Path: path, Err: fmt.Errorf("%w: %dx%d", canvas.ErrInvalidDimensions, cfg.Width, cfg.Height)}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &LoadError{Op: "seek", Path: path, Err: err}
	}
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &LoadError{Op: "decode " + format, Path: path, Err: err}
	}
	return img, nil
}

// SaveCanvas writes c to path, appending ".png" when the name carries no
// known image extension. It returns the path actually written.
func SaveCanvas(c *canvas.Canvas, path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	path = canvas.EnsureExtension(path)
	if err := c.Export(path); err != nil {
		return "", &SaveError{Path: path, Err: err}
	}
	return path, nil
}

// SaveSnapshot is SaveCanvas for a frozen copy of the pixels, suitable for
// running off the event loop.
func SaveSnapshot(ctx context.Context, img image.Image, path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	path = canvas.EnsureExtension(path)
	if err := ctx.Err(); err != nil {
		return "", &SaveError{Path: path, Err: err}
	}
	if err := canvas.WriteFile(path, img); err != nil {
		return "", &SaveError{Path: path, Err: err}
	}
	return path, nil
}
