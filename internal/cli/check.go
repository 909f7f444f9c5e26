package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/trackpull/internal/check"
	"github.com/backmassage/trackpull/internal/config"
	"github.com/backmassage/trackpull/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify ffmpeg/ffprobe availability and encoder support",
	RunE: func(cmd *cobra.Command, args []string) error {
		job := config.Default()
		job.Verbose = flagVerbose
		job.ColorMode = config.ColorMode(flagColor)
		job.LogFile = flagLogFile

		log, err := logging.NewLogger(&job)
		if err != nil {
			return err
		}
		defer log.Close()

		if !check.RunCheck(log) {
			return errors.New("system check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
