// Package filter implements in-place color filters over flat 4-channel
// pixel buffers.
//
// Filters come in two shapes. A [PixelFunc] maps one pixel's color channels
// to new values and needs nothing else; grayscale, invert, brightness,
// sepia, contrast, lofi, vintage and cyberpunk are built this way. A
// [PositionFunc] also receives the pixel coordinates and needs the buffer
// dimensions; vignette is the only one.
//
// Every filter walks the buffer in 4-byte steps, rewrites channels 0-2 and
// leaves channel 3 alone. Arithmetic is single precision to match the
// reference output byte for byte.
package filter
