package filter

import (
	"fmt"
	"math"

	"github.com/jpfielding/pixfx.go/pkg/noise"
	"github.com/jpfielding/pixfx.go/pkg/pixel"
)

// The explicit float32 conversions around products keep the compiler from
// fusing multiply-add, so results are identical on every architecture.

// Rec. 601 luma weights.
const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

func luma(r, g, b float32) float32 {
	return float32(lumR*r) + float32(lumG*g) + float32(lumB*b)
}

// Grayscale sets every color channel to the pixel's luma.
func Grayscale(pix []byte) {
	ApplyPixel(pix, grayscale)
}

func grayscale(r, g, b uint8) (uint8, uint8, uint8) {
	y := pixel.ClampFloat(luma(float32(r), float32(g), float32(b)))
	return y, y, y
}

// Invert replaces each color channel c with 255-c.
func Invert(pix []byte) {
	ApplyPixel(pix, invert)
}

func invert(r, g, b uint8) (uint8, uint8, uint8) {
	return 255 - r, 255 - g, 255 - b
}

// Brightness adds amount to every color channel, saturating at 0 and 255.
func Brightness(pix []byte, amount int) {
	ApplyPixel(pix, brightness(amount))
}

func brightness(amount int) PixelFunc {
	// any shift past 255 already saturates every channel
	amount = min(max(amount, -255), 255)
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		return pixel.Clamp(int(r) + amount), pixel.Clamp(int(g) + amount), pixel.Clamp(int(b) + amount)
	}
}

// Sepia applies the classic sepia tone matrix.
func Sepia(pix []byte) {
	ApplyPixel(pix, sepia)
}

func sepia(r, g, b uint8) (uint8, uint8, uint8) {
	fr, fg, fb := float32(r), float32(g), float32(b)
	return pixel.ClampFloat(float32(fr*0.393) + float32(fg*0.769) + float32(fb*0.189)),
		pixel.ClampFloat(float32(fr*0.349) + float32(fg*0.686) + float32(fb*0.168)),
		pixel.ClampFloat(float32(fr*0.272) + float32(fg*0.534) + float32(fb*0.131))
}

// ContrastPole is the amount at which the contrast factor divides by zero.
const ContrastPole = 259

// Contrast stretches (amount > 0) or flattens (amount < 0) each color channel
// around mid-gray. Useful amounts lie in [-255, 255]; amount == ContrastPole
// is rejected and leaves pix untouched.
func Contrast(pix []byte, amount int) error {
	fn, err := contrast(amount)
	if err != nil {
		return err
	}
	ApplyPixel(pix, fn)
	return nil
}

// ContrastFactor returns the per-channel gain for amount.
func ContrastFactor(amount int) (float32, error) {
	if amount == ContrastPole {
		return 0, fmt.Errorf("%w: contrast amount %d divides by zero", pixel.ErrInvalidArgument, amount)
	}
	a := float32(amount)
	return float32(259*(a+255)) / float32(255*(259-a)), nil
}

func contrast(amount int) (PixelFunc, error) {
	factor, err := ContrastFactor(amount)
	if err != nil {
		return nil, err
	}
	stretch := func(c uint8) uint8 {
		return pixel.ClampFloat(float32(factor*(float32(c)-128)) + 128)
	}
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		return stretch(r), stretch(g), stretch(b)
	}, nil
}

// Vignette darkens pixels in proportion to their distance from the image
// center. At strength 1 the corners go black; 0 is a no-op.
func Vignette(pix []byte, width, height int, strength float32) error {
	return ApplyPosition(pix, width, height, vignette(width, height, strength))
}

func vignette(width, height int, strength float32) PositionFunc {
	cx := float32(width) / 2
	cy := float32(height) / 2
	maxDist := sqrt32(float32(cx*cx) + float32(cy*cy))
	return func(x, y int, r, g, b uint8) (uint8, uint8, uint8) {
		dx := float32(x) - cx
		dy := float32(y) - cy
		dist := sqrt32(float32(dx*dx) + float32(dy*dy))
		factor := 1 - float32(dist/maxDist*strength)
		return pixel.ClampFloat(float32(float32(r) * factor)),
			pixel.ClampFloat(float32(float32(g) * factor)),
			pixel.ClampFloat(float32(float32(b) * factor))
	}
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Lofi desaturates slightly, adds a warm tint and overlays grain. The grain
// comes from a generator seeded with noise.Seed on every call, so identical
// input always yields identical output.
func Lofi(pix []byte) {
	ApplyPixel(pix, lofi(noise.New(noise.Seed)))
}

const (
	lofiDesaturate = 0.2
	lofiWarmRed    = 30
	lofiWarmGreen  = 15
	lofiGrain      = 30
)

func lofi(rng *noise.LCG) PixelFunc {
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		fr, fg, fb := float32(r), float32(g), float32(b)
		gray := float32(luma(fr, fg, fb) * lofiDesaturate)
		fr = float32(fr*(1-lofiDesaturate)) + gray
		fg = float32(fg*(1-lofiDesaturate)) + gray
		fb = float32(fb*(1-lofiDesaturate)) + gray

		fr += lofiWarmRed
		fg += lofiWarmGreen

		grain := float32((rng.Next() - 0.5) * lofiGrain)
		return pixel.ClampFloat(fr + grain), pixel.ClampFloat(fg + grain), pixel.ClampFloat(fb + grain)
	}
}

// Vintage fades the image and shifts it toward magenta.
func Vintage(pix []byte) {
	ApplyPixel(pix, vintage)
}

func vintage(r, g, b uint8) (uint8, uint8, uint8) {
	return pixel.ClampFloat(float32(float32(r)*0.9) + 40),
		pixel.ClampFloat(float32(float32(g)*0.7) + 10),
		pixel.ClampFloat(float32(float32(b)*0.9) + 40)
}

// Cyberpunk boosts red and blue and mutes green for a cyan/magenta split.
func Cyberpunk(pix []byte) {
	ApplyPixel(pix, cyberpunk)
}

func cyberpunk(r, g, b uint8) (uint8, uint8, uint8) {
	return pixel.ClampFloat(float32(float32(r)*1.3) - 30),
		pixel.ClampFloat(float32(float32(g) * 0.9)),
		pixel.ClampFloat(float32(float32(b)*1.4) - 10)
}
