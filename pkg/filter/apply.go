package filter

import "github.com/jpfielding/pixfx.go/pkg/pixel"

// PixelFunc maps the three color channels of one pixel to new values.
type PixelFunc func(r, g, b uint8) (uint8, uint8, uint8)

// PositionFunc is a PixelFunc that also depends on the pixel coordinates.
type PositionFunc func(x, y int, r, g, b uint8) (uint8, uint8, uint8)

// ApplyPixel runs fn over every whole pixel of pix in order.
// Trailing bytes that do not form a whole pixel are left untouched.
func ApplyPixel(pix []byte, fn PixelFunc) {
	n := len(pix) - len(pix)%pixel.Channels
	for i := 0; i < n; i += pixel.Channels {
		pix[i], pix[i+1], pix[i+2] = fn(pix[i], pix[i+1], pix[i+2])
	}
}

// ApplyPosition runs fn over the width x height pixels of pix, row by row.
func ApplyPosition(pix []byte, width, height int, fn PositionFunc) error {
	if err := pixel.CheckBounds(pix, width, height); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := pixel.Offset(x, y, width)
			pix[i], pix[i+1], pix[i+2] = fn(x, y, pix[i], pix[i+1], pix[i+2])
		}
	}
	return nil
}
