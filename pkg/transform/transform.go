// Package transform remaps pixel positions of flat 4-channel buffers.
//
// Every transform reads its source without modifying it and returns a newly
// allocated destination. Channel values, including channel 3, are copied
// verbatim; only their position changes.
package transform

import (
	"fmt"

	"github.com/jpfielding/pixfx.go/pkg/pixel"
)

// Resize scales pix to newWidth x newHeight with nearest-neighbor sampling.
//
// Destination pixels whose source offset falls outside pix are skipped and
// stay zero. A zero target dimension yields an empty result.
func Resize(pix []byte, width, height, newWidth, newHeight int) ([]byte, error) {
	if _, err := pixel.Size(width, height); err != nil {
		return nil, err
	}
	n, err := pixel.Size(newWidth, newHeight)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, n)
	if n == 0 {
		return dst, nil
	}

	xRatio := float32(width) / float32(newWidth)
	yRatio := float32(height) / float32(newHeight)
	for y := 0; y < newHeight; y++ {
		py := sample(y, yRatio, height)
		for x := 0; x < newWidth; x++ {
			px := sample(x, xRatio, width)
			src := pixel.Offset(px, py, width)
			if src+3 >= len(pix) {
				continue
			}
			copy(dst[pixel.Offset(x, y, newWidth):], pix[src:src+pixel.Channels])
		}
	}
	return dst, nil
}

// sample maps a destination coordinate to floor(i*ratio), kept below limit
// when single precision rounds the product up to the edge.
func sample(i int, ratio float32, limit int) int {
	s := int(float32(i) * ratio)
	if s >= limit && limit > 0 {
		s = limit - 1
	}
	return s
}

// Crop copies the newWidth x newHeight window whose top-left corner is
// (startX, startY).
//
// The window must fit horizontally; startX+newWidth > width is rejected.
// Rows that start at or below height are not copied and stay zero.
func Crop(pix []byte, width, height, startX, startY, newWidth, newHeight int) ([]byte, error) {
	if err := pixel.CheckBounds(pix, width, height); err != nil {
		return nil, err
	}
	if startX < 0 || startY < 0 {
		return nil, fmt.Errorf("%w: negative crop origin (%d,%d)", pixel.ErrInvalidArgument, startX, startY)
	}
	n, err := pixel.Size(newWidth, newHeight)
	if err != nil {
		return nil, err
	}
	if startX > width || newWidth > width-startX {
		return nil, fmt.Errorf("%w: crop of %d columns at x=%d exceeds width %d",
			pixel.ErrInvalidArgument, newWidth, startX, width)
	}

	dst := make([]byte, n)
	rowLen := newWidth * pixel.Channels
	for y := 0; y < newHeight; y++ {
		if y >= height-startY {
			break
		}
		srcY := startY + y
		src := pixel.Offset(startX, srcY, width)
		copy(dst[y*rowLen:(y+1)*rowLen], pix[src:src+rowLen])
	}
	return dst, nil
}

// FlipHorizontal mirrors pix around its vertical axis. The result has the
// same length as pix.
func FlipHorizontal(pix []byte, width, height int) ([]byte, error) {
	if err := pixel.CheckBounds(pix, width, height); err != nil {
		return nil, err
	}
	dst := make([]byte, len(pix))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := pixel.Offset(x, y, width)
			copy(dst[pixel.Offset(width-1-x, y, width):], pix[src:src+pixel.Channels])
		}
	}
	return dst, nil
}

// FlipVertical mirrors pix around its horizontal axis, one row at a time.
// The result has the same length as pix.
func FlipVertical(pix []byte, width, height int) ([]byte, error) {
	if err := pixel.CheckBounds(pix, width, height); err != nil {
		return nil, err
	}
	dst := make([]byte, len(pix))
	rowLen := width * pixel.Channels
	for y := 0; y < height; y++ {
		src := y * rowLen
		copy(dst[(height-1-y)*rowLen:], pix[src:src+rowLen])
	}
	return dst, nil
}
