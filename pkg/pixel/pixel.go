package pixel

import (
	"errors"
	"fmt"
	"math"
)

// Channels is the number of interleaved bytes per pixel. Channels 0-2 carry
// color; channel 3 is carried through untouched.
const Channels = 4

var (
	// ErrInvalidArgument marks parameters a caller must fix before retrying.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBounds marks geometry that does not fit the supplied buffer.
	ErrBounds = fmt.Errorf("%w: geometry exceeds buffer", ErrInvalidArgument)
)

// Clamp saturates v to the 8-bit channel range.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ClampFloat truncates v toward zero and saturates it to the 8-bit range.
// NaN maps to 0.
func ClampFloat(v float32) uint8 {
	switch {
	case math.IsNaN(float64(v)), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Offset returns the byte offset of pixel (x, y) in a row-major buffer.
func Offset(x, y, width int) int {
	return (y*width + x) * Channels
}

// Size returns width*height*Channels, rejecting negative or overflowing dimensions.
func Size(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if width == 0 || height == 0 {
		return 0, nil
	}
	if width > math.MaxInt/Channels/height {
		return 0, fmt.Errorf("%w: dimensions %dx%d overflow", ErrInvalidArgument, width, height)
	}
	return width * height * Channels, nil
}

// CheckBounds verifies that pix holds at least width*height pixels.
func CheckBounds(pix []byte, width, height int) error {
	n, err := Size(width, height)
	if err != nil {
		return err
	}
	if n > len(pix) {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrBounds, width, height, n, len(pix))
	}
	return nil
}
