package canvas

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrInvalidFont is returned for font specs that cannot be resolved.
var ErrInvalidFont = errors.New("invalid font")

// DefaultFont is used when no font spec is given.
const DefaultFont = "Go 16"

var fontFamilies = map[string][]byte{
	"go":             goregular.TTF,
	"go regular":     goregular.TTF,
	"go bold":        gobold.TTF,
	"go italic":      goitalic.TTF,
	"go bold italic": gobolditalic.TTF,
	"go medium":      gomedium.TTF,
	"go mono":        gomono.TTF,
	"go mono bold":   gomonobold.TTF,
}

var (
	parsedFonts sync.Map // family -> *truetype.Font
	fontFaces   sync.Map // normalised spec -> font.Face
)

// FontFamilies lists the family names ParseFont understands.
func FontFamilies() []string {
	return []string{"Go", "Go Bold", "Go Italic", "Go Bold Italic", "Go Medium", "Go Mono", "Go Mono Bold"}
}

// ParseFont resolves a spec of the form "<family> <size>", for example
// "Go Mono 14". Faces are cached and shared.
func ParseFont(spec string) (font.Face, error) {
	family, size, err := splitFontSpec(spec)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s %g", family, size)
	if face, ok := fontFaces.Load(key); ok {
		return face.(font.Face), nil
	}
	f, err := loadFamily(family)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	actual, _ := fontFaces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

func splitFontSpec(spec string) (string, float64, error) {
	fields := strings.Fields(strings.ToLower(spec))
	if len(fields) == 0 {
		fields = strings.Fields(strings.ToLower(DefaultFont))
	}
	size := 16.0
	if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
		size = v
		fields = fields[:len(fields)-1]
	}
	if math.IsNaN(size) || size <= 0 || size > 512 {
		return "", 0, fmt.Errorf("%w: size %g out of range in %q", ErrInvalidFont, size, spec)
	}
	if len(fields) == 0 {
		fields = []string{"go"}
	}
	family := strings.Join(fields, " ")
	if _, ok := fontFamilies[family]; !ok {
		return "", 0, fmt.Errorf("%w: unknown family %q", ErrInvalidFont, family)
	}
	return family, size, nil
}

func loadFamily(family string) (*truetype.Font, error) {
	if f, ok := parsedFonts.Load(family); ok {
		return f.(*truetype.Font), nil
	}
	f, err := truetype.Parse(fontFamilies[family])
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", family, err)
	}
	parsedFonts.Store(family, f)
	return f, nil
}
