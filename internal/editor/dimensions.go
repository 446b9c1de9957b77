package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/canvas"
)

// ParseDimensions reads "W H", "WxH" or "W,H".
func ParseDimensions(input string) (int, int, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(input), func(r rune) bool {
		switch r {
		case ' ', '\t', 'x', 'X', ',', '×':
			return true
		}
		return false
	})
	if len(fields) != 2 {
		return 0, 0, &InvalidDimensionsError{Input: input, Reason: "expected width and height"}
	}
	var dims [2]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, &InvalidDimensionsError{Input: input, Reason: fmt.Sprintf("%q is not a whole number", f)}
		}
		if n <= 0 {
			return 0, 0, &InvalidDimensionsError{Input: input, Reason: "dimensions must be positive"}
		}
		if n > canvas.MaxDimension {
			return 0, 0, &InvalidDimensionsError{Input: input, Reason: fmt.Sprintf("dimensions must not exceed %d", canvas.MaxDimension)}
		}
		dims[i] = n
	}
	return dims[0], dims[1], nil
}
