package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jpfielding/pixfx.go/pkg/imageio"
	"github.com/jpfielding/pixfx.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewInfoCmd prints the decoded geometry and content fingerprint of an image
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info INPUT",
		Short: "describe an image buffer",
		Long:  "Decodes an image and prints its dimensions, buffer size, the MD5 of the encoded file and a content fingerprint that is equal for byte-identical pixels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := imageio.Load(args[0])
			if err != nil {
				return err
			}
			format, err := imageio.FormatOf(args[0])
			if err != nil {
				format = "unknown"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Format: %s\n", format)
			fmt.Fprintf(w, "Width: %d\n", b.Width)
			fmt.Fprintf(w, "Height: %d\n", b.Height)
			fmt.Fprintf(w, "Bytes: %d\n", len(b.Pix))
			fmt.Fprintf(w, "MD5: %s\n", util.Md5ThenHex(raw))
			fmt.Fprintf(w, "Fingerprint: %s\n", util.Fingerprint(b.Pix))
			return nil
		},
	}
	return cmd
}
