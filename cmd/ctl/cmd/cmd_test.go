package cmd

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpfielding/pixfx.go/pkg/filter"
	"github.com/jpfielding/pixfx.go/pkg/imageio"
	"github.com/jpfielding/pixfx.go/pkg/pixel"
	"github.com/jpfielding/pixfx.go/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeImage stores a w x h PNG with distinct pixels and returns its buffer.
func writeImage(t *testing.T, path string, w, h int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.NewBuffer(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, [4]byte{byte(x * 30), byte(y * 30), byte(x*y + 10), 255})
		}
	}
	require.NoError(t, imageio.Save(b, path, 0))
	return b
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot(context.Background(), "testsha")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := Execute(context.Background(), root)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "testsha\n", out)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	for _, name := range filter.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "--strength")
}

func TestFilter_Single(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := writeImage(t, in, 6, 4)
	out := filepath.Join(dir, "out.png")

	_, err := run(t, "filter", "brightness", in, "-o", out, "--amount", "20")
	require.NoError(t, err)

	got, err := imageio.Load(out)
	require.NoError(t, err)
	filter.Brightness(src.Pix, 20)
	assert.Equal(t, src, got)
}

func TestFilter_Batch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	var inputs []string
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name+".png")
		writeImage(t, p, 5, 5)
		inputs = append(inputs, p)
	}
	args := append([]string{"filter", "lofi"}, inputs...)
	args = append(args, "--out-dir", outDir, "-j", "2")
	_, err := run(t, args...)
	require.NoError(t, err)

	// identical inputs produce identical lofi output
	var first *pixel.Buffer
	for _, name := range []string{"a", "b", "c"} {
		got, err := imageio.Load(filepath.Join(outDir, name+"_lofi.png"))
		require.NoError(t, err)
		if first == nil {
			first = got
			continue
		}
		assert.Equal(t, first, got)
	}
}

func TestFilter_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 2, 2)

	_, err := run(t, "filter", "blur", in)
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)

	_, err = run(t, "filter", "contrast", in, "-o", filepath.Join(dir, "x.png"), "--amount", "259")
	assert.ErrorIs(t, err, pixel.ErrInvalidArgument)

	_, err = run(t, "filter", "invert", in, in, "-o", filepath.Join(dir, "x.png"))
	assert.Error(t, err)

	_, err = run(t, "filter", "invert", filepath.Join(dir, "missing.png"), "-o", filepath.Join(dir, "x.png"))
	assert.Error(t, err)
}

func TestFilter_DuplicateDestination(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "x.png")
	b := filepath.Join(dir, "b", "x.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(a), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(b), 0o755))
	writeImage(t, a, 2, 2)
	writeImage(t, b, 2, 2)
	outDir := filepath.Join(dir, "o")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	_, err := run(t, "filter", "invert", a, b, "--out-dir", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(outDir, "x_invert.png"))
	_, statErr := os.Stat(filepath.Join(outDir, "x_invert.png"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written when destinations collide")
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := writeImage(t, in, 4, 4)
	out := filepath.Join(dir, "out.png")

	_, err := run(t, "resize", in, "-o", out, "--scale", "0.5")
	require.NoError(t, err)
	got, err := imageio.Load(out)
	require.NoError(t, err)

	want, err := transform.Resize(src.Pix, 4, 4, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, &pixel.Buffer{Pix: want, Width: 2, Height: 2}, got)

	_, err = run(t, "resize", in, "-o", out, "--width", "3", "--height", "5")
	require.NoError(t, err)
	got, err = imageio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Width)
	assert.Equal(t, 5, got.Height)

	_, err = run(t, "resize", in, "-o", out)
	assert.Error(t, err)
}

func TestCrop(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := writeImage(t, in, 6, 4)
	out := filepath.Join(dir, "out.png")

	_, err := run(t, "crop", in, "-o", out, "--aspect", "1:1")
	require.NoError(t, err)
	got, err := imageio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 4, got.Height)
	assert.Equal(t, src.At(1, 0), got.At(0, 0))

	_, err = run(t, "crop", in, "-o", out, "--x", "1", "--y", "1", "--width", "2", "--height", "2")
	require.NoError(t, err)
	got, err = imageio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, src.At(2, 2), got.At(1, 1))

	_, err = run(t, "crop", in, "-o", out, "--x", "5", "--width", "2", "--height", "1")
	assert.ErrorIs(t, err, pixel.ErrInvalidArgument)
}

func TestFlip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := writeImage(t, in, 3, 2)
	out := filepath.Join(dir, "out.png")

	_, err := run(t, "flip", in, "-o", out, "--axis", "h")
	require.NoError(t, err)
	got, err := imageio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, src.At(2, 0), got.At(0, 0))

	_, err = run(t, "flip", in, "-o", out, "--axis", "v")
	require.NoError(t, err)
	got, err = imageio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, src.At(0, 1), got.At(0, 0))

	_, err = run(t, "flip", in, "-o", out, "--axis", "z")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 7, 3)

	out, err := run(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Format: PNG")
	assert.Contains(t, out, "Width: 7")
	assert.Contains(t, out, "Height: 3")
	assert.Contains(t, out, "Bytes: 84")
	raw, err := os.ReadFile(in)
	require.NoError(t, err)
	sum := md5.Sum(raw)
	assert.Contains(t, out, "MD5: "+hex.EncodeToString(sum[:]))
	assert.Contains(t, out, "Fingerprint: ")
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 2, 2)
	logPath := filepath.Join(dir, "pixctl.log")

	_, err := run(t, "filter", "sepia", in, "-o", filepath.Join(dir, "out.png"),
		"--log-file", logPath, "--log-format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"filtered"`)
	assert.Contains(t, line, `"op":"sepia"`)
}

func TestLogFile_ClosedOnError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 2, 2)
	logPath := filepath.Join(dir, "pixctl.log")

	_, err := run(t, "filter", "contrast", in, "-o", filepath.Join(dir, "out.png"),
		"--amount", "259", "--log-file", logPath, "--log-format", "json")
	require.ErrorIs(t, err, pixel.ErrInvalidArgument)
	assert.Nil(t, logFile, "log file must be released after a failed command")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"command failed"`)
}

func TestDerivedPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "photo_sepia.jpg"), derivedPath("out", "/a/b/photo.jpg", "sepia"))
	assert.Equal(t, filepath.Join(".", "raw_invert"), derivedPath(".", "raw", "invert"))
}
