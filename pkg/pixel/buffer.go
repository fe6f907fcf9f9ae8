package pixel

import "fmt"

// Buffer carries a pixel slice together with its logical dimensions.
type Buffer struct {
	// Pix holds Width*Height pixels, 4 bytes each, row-major.
	Pix []byte

	Width  int
	Height int
}

// NewBuffer allocates a zeroed buffer of the given dimensions.
func NewBuffer(width, height int) (*Buffer, error) {
	n, err := Size(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Pix:    make([]byte, n),
		Width:  width,
		Height: height,
	}, nil
}

// Validate reports whether Pix matches the declared dimensions exactly.
func (b *Buffer) Validate() error {
	n, err := Size(b.Width, b.Height)
	if err != nil {
		return err
	}
	if len(b.Pix) != n {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrBounds, b.Width, b.Height, n, len(b.Pix))
	}
	return nil
}

// At returns the 4 channels of pixel (x, y). Out of range coordinates return zero.
func (b *Buffer) At(x, y int) [Channels]byte {
	var px [Channels]byte
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return px
	}
	i := Offset(x, y, b.Width)
	copy(px[:], b.Pix[i:i+Channels])
	return px
}

// Set writes the 4 channels of pixel (x, y). Out of range coordinates are ignored.
func (b *Buffer) Set(x, y int, px [Channels]byte) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := Offset(x, y, b.Width)
	copy(b.Pix[i:i+Channels], px[:])
}
