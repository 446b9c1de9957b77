package editor

import (
	"errors"
	"fmt"
)

// ErrCancelled marks a dismissed interaction. It is never shown to the user.
var ErrCancelled = errors.New("cancelled")

// InvalidDimensionsError reports resize input that is not two positive
// integers within the canvas limits.
type InvalidDimensionsError struct {
	Input  string
	Reason string
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid dimensions %q: %s", e.Input, e.Reason)
}
