package canvas

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".pdf":  FormatPDF,
}

// FormatForPath maps the extension of path to a format. Unknown or missing
// extensions report PNG and false.
func FormatForPath(path string) (Format, bool) {
	f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return FormatPNG, false
	}
	return f, true
}

// EnsureExtension appends ".png" unless path already ends in a recognised
// export extension.
func EnsureExtension(path string) string {
	if _, ok := FormatForPath(path); ok {
		return path
	}
	return path + ".png"
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatPDF:
		return encodePDF(w, img)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// encodePDF produces a single page the size of the image, in points, with
// the image embedded losslessly.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	return pdf.Output(w)
}

// WriteFile encodes img into path atomically. The data is written to a
// hidden sibling file which is renamed over path only after a successful
// sync; any failure removes the sibling and leaves path untouched.
func WriteFile(path string, img image.Image) (err error) {
	f, _ := FormatForPath(path)
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if cerr := out.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			log.Printf("error closing %q: %v", tmpPath, cerr)
		}
		if rerr := os.Remove(tmpPath); rerr != nil && !os.IsNotExist(rerr) {
			log.Printf("error removing %q: %v", tmpPath, rerr)
		}
	}()

	bw := bufio.NewWriter(out)
	if err = Encode(bw, img, f); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
