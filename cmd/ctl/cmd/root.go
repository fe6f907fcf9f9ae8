package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/pixfx.go/pkg/logging"
	"github.com/spf13/cobra"
)

// logFile is the rotated sink opened for --log-file, released by Execute.
var logFile io.WriteCloser

// Execute runs root and closes the --log-file sink whether or not the command failed.
func Execute(ctx context.Context, root *cobra.Command) error {
	defer closeLogFile()
	err := root.Execute()
	if err != nil {
		slog.ErrorContext(ctx, "command failed", "error", err)
	}
	return err
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log file:", err)
	}
	logFile = nil
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
}

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixctl",
		Short: "a CLI to run pixel filters and transforms over image files",
		Long:  "pixctl decodes an image, runs exactly one color filter or geometric transform over its RGBA pixels and encodes the result.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")
			logPath, _ := cmd.Flags().GetString("log-file")

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}
			var out io.Writer = os.Stderr
			if logPath != "" {
				closeLogFile()
				logFile = logging.RotatingFile(logPath, 10, 3)
				out = logFile
			}
			slog.SetDefault(logging.Logger(out, logFormat == "json", level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewListCmd(ctx),
		NewFilterCmd(ctx),
		NewResizeCmd(ctx),
		NewCropCmd(ctx),
		NewFlipCmd(ctx),
		NewInfoCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-format", "text", "Log format (text|json)")
	pf.String("log-file", "", "Write logs to a rotated file instead of stderr")
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
