package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpfielding/pixfx.go/pkg/imageio"
	"github.com/jpfielding/pixfx.go/pkg/pixel"
	"github.com/jpfielding/pixfx.go/pkg/transform"
	"github.com/jpfielding/pixfx.go/pkg/util"
	"github.com/spf13/cobra"
)

// geometryFunc maps a source buffer to a newly allocated one.
type geometryFunc func(src *pixel.Buffer) (*pixel.Buffer, error)

// runGeometry loads in, applies fn and saves the result to out.
func runGeometry(ctx context.Context, in, out string, quality int, fn geometryFunc) error {
	src, err := imageio.Load(in)
	if err != nil {
		return err
	}
	dst, err := fn(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := imageio.Save(dst, out, quality); err != nil {
		return err
	}
	slog.InfoContext(ctx, "transformed", "in", in, "out", out,
		"from", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"to", fmt.Sprintf("%dx%d", dst.Width, dst.Height),
		"fingerprint", util.Fingerprint(dst.Pix))
	return nil
}

func ioFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output path (required)")
	pf.IntP("quality", "q", imageio.DefaultQuality, "JPEG quality (1-100)")
	cmd.MarkPersistentFlagRequired("out")
}

// NewResizeCmd scales an image with nearest-neighbor sampling
func NewResizeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize INPUT",
		Short: "nearest-neighbor resize",
		Long:  "Resizes to --width x --height, or by --scale when given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			quality, _ := cmd.Flags().GetInt("quality")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			scale, _ := cmd.Flags().GetFloat64("scale")
			useScale := cmd.Flags().Changed("scale")
			if !useScale && (width <= 0 || height <= 0) {
				return fmt.Errorf("resize needs --width and --height, or --scale")
			}

			params := map[string]any{"width": width, "height": height, "scale": scale}
			return runGeometry(withOp(ctx, "resize", params), args[0], out, quality, func(src *pixel.Buffer) (*pixel.Buffer, error) {
				w, h := width, height
				if useScale {
					var err error
					if w, h, err = transform.ScaleDims(src.Width, src.Height, scale); err != nil {
						return nil, err
					}
				}
				pix, err := transform.Resize(src.Pix, src.Width, src.Height, w, h)
				if err != nil {
					return nil, err
				}
				return &pixel.Buffer{Pix: pix, Width: w, Height: h}, nil
			})
		},
	}
	ioFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.Int("width", 0, "target width")
	pf.Int("height", 0, "target height")
	pf.Float64("scale", 1, "scale factor, e.g. 0.5")
	return cmd
}

// NewCropCmd cuts a window, or the centered window of an aspect ratio
func NewCropCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop INPUT",
		Short: "crop a window",
		Long:  "Crops --width x --height at (--x, --y), or the largest centered window of --aspect W:H.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			quality, _ := cmd.Flags().GetInt("quality")
			aspect, _ := cmd.Flags().GetString("aspect")
			var r transform.Rect
			r.X, _ = cmd.Flags().GetInt("x")
			r.Y, _ = cmd.Flags().GetInt("y")
			r.Width, _ = cmd.Flags().GetInt("width")
			r.Height, _ = cmd.Flags().GetInt("height")

			var ratioW, ratioH int
			if aspect != "" {
				var err error
				if ratioW, ratioH, err = transform.ParseAspect(aspect); err != nil {
					return err
				}
			}

			params := map[string]any{"rect": r, "aspect": aspect}
			return runGeometry(withOp(ctx, "crop", params), args[0], out, quality, func(src *pixel.Buffer) (*pixel.Buffer, error) {
				window := r
				if aspect != "" {
					var err error
					if window, err = transform.AspectRect(src.Width, src.Height, ratioW, ratioH); err != nil {
						return nil, err
					}
				}
				pix, err := transform.CropRect(src.Pix, src.Width, src.Height, window)
				if err != nil {
					return nil, err
				}
				return &pixel.Buffer{Pix: pix, Width: window.Width, Height: window.Height}, nil
			})
		},
	}
	ioFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.Int("x", 0, "left edge")
	pf.Int("y", 0, "top edge")
	pf.Int("width", 0, "window width")
	pf.Int("height", 0, "window height")
	pf.String("aspect", "", "center crop to an aspect ratio, e.g. 16:9")
	return cmd
}

// NewFlipCmd mirrors an image
func NewFlipCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flip INPUT",
		Short: "mirror horizontally or vertically",
		Long:  "Mirrors around the vertical axis (--axis h) or the horizontal axis (--axis v).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			quality, _ := cmd.Flags().GetInt("quality")
			axis, _ := cmd.Flags().GetString("axis")

			var flip func([]byte, int, int) ([]byte, error)
			switch axis {
			case "h", "horizontal":
				flip = transform.FlipHorizontal
			case "v", "vertical":
				flip = transform.FlipVertical
			default:
				return fmt.Errorf("unknown axis %q (h|v)", axis)
			}
			return runGeometry(withOp(ctx, "flip", axis), args[0], out, quality, func(src *pixel.Buffer) (*pixel.Buffer, error) {
				pix, err := flip(src.Pix, src.Width, src.Height)
				if err != nil {
					return nil, err
				}
				return &pixel.Buffer{Pix: pix, Width: src.Width, Height: src.Height}, nil
			})
		},
	}
	ioFlags(cmd)
	cmd.PersistentFlags().String("axis", "h", "h (mirror left-right) or v (mirror top-bottom)")
	return cmd
}
