// Package cli wires the cobra command tree: run (the batch), check
// (diagnostics), and the interactive prompt flow.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version and commit are injected at build time via -ldflags. When built
// with plain "go build" they retain their defaults.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// Persistent display/logging flags, applied to the job before NewLogger.
var (
	flagColor   string
	flagLogFile string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trackpull",
	Short: "Batch-extract audio tracks from video files",
	Long: `trackpull batch-extracts and transcodes audio tracks from a folder of
video files using ffmpeg:

  - Modes: copy (no re-encode), mp3, aac, wav
  - Recursive scan with optional folder-structure preservation
  - Audio track selection by index or ISO-639-2 language
  - EBU R128 loudness normalization
  - Concurrent workers, per-file progress, cooperative cancel (Ctrl-C)
  - Optional GPU (CUDA) accelerated decoding

Example:
  trackpull run ~/videos ~/audio --mode mp3 --bitrate 192 --workers 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s)", version, commit)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "trackpull: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto | always | never")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also append log lines to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose (debug) output")
}
