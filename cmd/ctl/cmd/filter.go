package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jpfielding/pixfx.go/pkg/filter"
	"github.com/jpfielding/pixfx.go/pkg/imageio"
	"github.com/jpfielding/pixfx.go/pkg/logging"
	"github.com/jpfielding/pixfx.go/pkg/util"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewListCmd prints the registered filters
func NewListCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list color filters",
		Long:  "Lists every registered color filter with the parameters it reads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range filter.Names() {
				d, err := filter.Lookup(name)
				if err != nil {
					return err
				}
				params := make([]string, len(d.Params))
				for i, p := range d.Params {
					params[i] = "--" + string(p)
				}
				fmt.Fprintf(w, "%-10s %-45s %s\n", d.Name, d.Summary, strings.Join(params, " "))
			}
			return nil
		},
	}
	return cmd
}

// NewFilterCmd applies one color filter to one or more images
func NewFilterCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter NAME INPUT...",
		Short: "apply a color filter",
		Long:  "Applies one color filter in place to each input image. A single input may be written to --out; several inputs go to --out-dir as <name>_<filter><ext> and are processed concurrently.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := filter.Lookup(args[0])
			if err != nil {
				return err
			}
			inputs := args[1:]
			out, _ := cmd.Flags().GetString("out")
			outDir, _ := cmd.Flags().GetString("out-dir")
			jobs, _ := cmd.Flags().GetInt("jobs")
			quality, _ := cmd.Flags().GetInt("quality")
			amount, _ := cmd.Flags().GetInt("amount")
			strength, _ := cmd.Flags().GetFloat32("strength")
			params := filter.Params{Amount: amount, Strength: strength}

			if out != "" && len(inputs) > 1 {
				return fmt.Errorf("--out takes a single input, got %d; use --out-dir", len(inputs))
			}

			dsts := make([]string, len(inputs))
			seen := make(map[string]string, len(inputs))
			for i, in := range inputs {
				dst := out
				if dst == "" {
					dst = derivedPath(outDir, in, d.Name)
				}
				key := filepath.Clean(dst)
				if prev, ok := seen[key]; ok {
					return fmt.Errorf("%s and %s both write %s", prev, in, dst)
				}
				seen[key] = in
				dsts[i] = dst
			}

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(max(jobs, 1))
			for i, in := range inputs {
				in := in
				dst := dsts[i]
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					return runFilter(withOp(ctx, d.Name, params), d, params, in, dst, quality)
				})
			}
			return g.Wait()
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output path for a single input")
	pf.String("out-dir", ".", "output directory for derived names")
	pf.IntP("jobs", "j", 4, "number of images processed concurrently")
	pf.IntP("quality", "q", imageio.DefaultQuality, "JPEG quality (1-100)")
	pf.Int("amount", 0, "brightness/contrast amount")
	pf.Float32("strength", 0.5, "vignette strength")
	return cmd
}

func runFilter(ctx context.Context, d filter.Descriptor, params filter.Params, in, out string, quality int) error {
	b, err := imageio.Load(in)
	if err != nil {
		return err
	}
	if err := d.Apply(b.Pix, b.Width, b.Height, params); err != nil {
		return fmt.Errorf("%s on %s: %w", d.Name, in, err)
	}
	if err := imageio.Save(b, out, quality); err != nil {
		return err
	}
	slog.InfoContext(ctx, "filtered", "in", in, "out", out,
		"width", b.Width, "height", b.Height, "fingerprint", util.Fingerprint(b.Pix))
	return nil
}

// derivedPath maps dir + photo.jpg + sepia to dir/photo_sepia.jpg.
func derivedPath(dir, in, suffix string) string {
	ext := filepath.Ext(in)
	base := strings.TrimSuffix(filepath.Base(in), ext)
	return filepath.Join(dir, base+"_"+suffix+ext)
}

// withOp tags ctx with the operation name and a stable id for its parameters.
func withOp(ctx context.Context, op string, params any) context.Context {
	return logging.AppendCtx(ctx,
		slog.String("op", op),
		slog.String("params_id", util.HashUUID(params)),
	)
}
