package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jpfielding/pixfx.go/pkg/pixel"
)

// Rect is a crop window in pixel coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// CropRect is Crop with the window given as a Rect.
func CropRect(pix []byte, width, height int, r Rect) ([]byte, error) {
	return Crop(pix, width, height, r.X, r.Y, r.Width, r.Height)
}

// ScaleDims returns width and height multiplied by scale, rounded to the
// nearest pixel.
func ScaleDims(width, height int, scale float64) (int, int, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0, 0, fmt.Errorf("%w: scale %v", pixel.ErrInvalidArgument, scale)
	}
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if _, err := pixel.Size(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// AspectRect returns the largest window with aspect ratioW:ratioH centered in
// a width x height image.
func AspectRect(width, height, ratioW, ratioH int) (Rect, error) {
	if ratioW <= 0 || ratioH <= 0 {
		return Rect{}, fmt.Errorf("%w: aspect %d:%d", pixel.ErrInvalidArgument, ratioW, ratioH)
	}
	if width <= 0 || height <= 0 {
		return Rect{}, fmt.Errorf("%w: cannot crop %dx%d to an aspect ratio", pixel.ErrInvalidArgument, width, height)
	}
	current := float64(width) / float64(height)
	target := float64(ratioW) / float64(ratioH)

	w, h := width, height
	if current > target {
		w = int(math.Round(float64(height) * target))
	} else {
		h = int(math.Round(float64(width) / target))
	}
	w, h = min(max(w, 1), width), min(max(h, 1), height)
	return Rect{
		X:      int(math.Round(float64(width-w) / 2)),
		Y:      int(math.Round(float64(height-h) / 2)),
		Width:  w,
		Height: h,
	}, nil
}

// ParseAspect parses a ratio such as "16:9".
func ParseAspect(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: aspect %q is not W:H", pixel.ErrInvalidArgument, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: aspect width: %v", pixel.ErrInvalidArgument, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: aspect height: %v", pixel.ErrInvalidArgument, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: aspect %q must be positive", pixel.ErrInvalidArgument, s)
	}
	return w, h, nil
}
