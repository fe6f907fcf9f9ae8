package filter

// pixels builds a buffer from 4-byte pixels.
func pixels(px ...[4]byte) []byte {
	buf := make([]byte, 0, len(px)*4)
	for _, p := range px {
		buf = append(buf, p[:]...)
	}
	return buf
}

// gradient returns a w*h buffer whose channels vary with position and whose
// alpha encodes the pixel index.
func gradient(w, h int) []byte {
	buf := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			buf[i] = byte(x * 255 / max(w-1, 1))
			buf[i+1] = byte(y * 255 / max(h-1, 1))
			buf[i+2] = byte((x + y) * 7)
			buf[i+3] = byte(y*w + x)
		}
	}
	return buf
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// alphas extracts channel 3 of every pixel.
func alphas(b []byte) []byte {
	out := make([]byte, 0, len(b)/4)
	for i := 3; i < len(b); i += 4 {
		out = append(out, b[i])
	}
	return out
}
