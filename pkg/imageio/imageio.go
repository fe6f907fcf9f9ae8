// Package imageio moves images between files and pixel buffers.
//
// Decoding goes through imaging, which handles JPEG, PNG, GIF, BMP and TIFF
// and applies EXIF orientation. WebP input is registered from x/image.
// Buffers are non-premultiplied RGBA so channel 3 travels through filters as
// plain alpha.
package imageio

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers the webp decoder

	"github.com/jpfielding/pixfx.go/pkg/pixel"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// Load decodes the image at path into a buffer.
func Load(path string) (*pixel.Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	b := ToBuffer(img)
	slog.Debug("decoded image", "path", path, "width", b.Width, "height", b.Height)
	return b, nil
}

// Decode reads an image stream into a buffer.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return ToBuffer(img), nil
}

// ToBuffer copies img into a tightly packed non-premultiplied RGBA buffer.
func ToBuffer(img image.Image) *pixel.Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := &pixel.Buffer{Pix: make([]byte, w*h*pixel.Channels), Width: w, Height: h}

	src, ok := img.(*image.NRGBA)
	if !ok {
		dst := &image.NRGBA{Pix: b.Pix, Stride: w * pixel.Channels, Rect: image.Rect(0, 0, w, h)}
		draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
		return b
	}
	rowLen := w * pixel.Channels
	for y := 0; y < h; y++ {
		i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(b.Pix[y*rowLen:(y+1)*rowLen], src.Pix[i:i+rowLen])
	}
	return b
}

// ToImage wraps b as an image without copying.
func ToImage(b *pixel.Buffer) (*image.NRGBA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * pixel.Channels,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}, nil
}

// Save encodes b to path; the format follows the file extension.
func Save(b *pixel.Buffer, path string, quality int) error {
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path, encodeOptions(quality)...); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	slog.Debug("encoded image", "path", path, "width", b.Width, "height", b.Height)
	return nil
}

// Encode writes b to w in the named format (jpeg, png, gif, tiff, bmp).
func Encode(w io.Writer, b *pixel.Buffer, format string, quality int) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", format, err)
	}
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, f, encodeOptions(quality)...)
}

// FormatOf returns the format implied by a file name, e.g. "JPEG".
func FormatOf(path string) (string, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

func encodeOptions(quality int) []imaging.EncodeOption {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return []imaging.EncodeOption{imaging.JPEGQuality(quality)}
}
