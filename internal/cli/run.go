package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/trackpull/internal/check"
	"github.com/backmassage/trackpull/internal/config"
	"github.com/backmassage/trackpull/internal/display"
	"github.com/backmassage/trackpull/internal/events"
	"github.com/backmassage/trackpull/internal/logging"
	"github.com/backmassage/trackpull/internal/pipeline"
)

// eventBuffer sizes the batch event queue. Large enough that a burst of
// fast completions never stalls a worker behind the log writer.
const eventBuffer = 256

var (
	runMode        string
	runRecursive   bool
	runPreserve    bool
	runTrackIndex  int
	runTrackLang   string
	runLoudnorm    bool
	runSampleRate  int
	runBitrate     int
	runGPU         bool
	runWorkers     int
	runPreset      string
	runJobFile     string
	runSaveJob     string
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run [input_dir [output_dir]]",
	Short: "Extract audio from every video file under input_dir",
	Long: `Scans input_dir for video files (.mp4 .mkv .mov .avi .webm .m4v),
extracts the selected audio track from each, and writes the results under
output_dir (default: ./audio_out).

Options are layered: defaults, then --job-file, then --preset, then
individual flags, then --interactive prompts.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runMode, "mode", "m", string(config.ModeCopy), "Extraction mode: copy | mp3 | aac | wav")
	runCmd.Flags().BoolVarP(&runRecursive, "recursive", "r", true, "Scan subdirectories")
	runCmd.Flags().BoolVar(&runPreserve, "preserve-tree", true, "Mirror the input folder structure under the output root")
	runCmd.Flags().IntVar(&runTrackIndex, "track-index", 0, "Zero-based audio track index to extract")
	runCmd.Flags().StringVar(&runTrackLang, "track-lang", "", "Select audio track by ISO-639-2 language code instead of index")
	runCmd.Flags().BoolVar(&runLoudnorm, "loudnorm", false, "Apply EBU R128 loudness normalization")
	runCmd.Flags().IntVar(&runSampleRate, "sample-rate", 0, "Target sample rate in Hz (0 = keep source rate)")
	runCmd.Flags().IntVarP(&runBitrate, "bitrate", "b", 0, "Target bitrate in kbps (0 = encoder default)")
	runCmd.Flags().BoolVar(&runGPU, "gpu", false, "Use GPU (CUDA) accelerated decoding")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", config.DefaultWorkers(), "Concurrent worker count")
	runCmd.Flags().StringVar(&runPreset, "preset", "", "Apply a named preset (available: music-gpu)")
	runCmd.Flags().StringVar(&runJobFile, "job-file", "", "Load job options from a YAML file")
	runCmd.Flags().StringVar(&runSaveJob, "save-job", "", "Write the effective job options to a YAML file and continue")
	runCmd.Flags().BoolVar(&runInteractive, "interactive", false, "Prompt for any options not given on the command line")

	runCmd.MarkFlagsMutuallyExclusive("track-index", "track-lang")
}

// assembleJob layers defaults, job file, preset, positional args, and
// changed flags into the final Job.
func assembleJob(cmd *cobra.Command, args []string) (*config.Job, error) {
	job := config.Default()

	if runJobFile != "" {
		loaded, err := config.LoadFile(runJobFile)
		if err != nil {
			return nil, err
		}
		job = *loaded
	}

	if runPreset != "" {
		if err := config.ApplyPreset(&job, runPreset); err != nil {
			return nil, err
		}
	}

	if len(args) > 0 {
		job.InputDir = args[0]
	}
	if len(args) > 1 {
		job.OutputDir = args[1]
	}

	// Individual flags override file and preset values, but only when the
	// user actually passed them.
	flags := cmd.Flags()
	if flags.Changed("mode") {
		job.Mode = config.Mode(runMode)
	}
	if flags.Changed("recursive") {
		job.Recursive = runRecursive
	}
	if flags.Changed("preserve-tree") {
		job.PreserveTree = runPreserve
	}
	if flags.Changed("track-index") {
		job.Selector = config.StreamSelector{Index: runTrackIndex}
	}
	if flags.Changed("track-lang") {
		lang := runTrackLang
		if lang == "" {
			lang = "eng"
		}
		job.Selector = config.StreamSelector{ByLanguage: true, Language: lang}
	}
	if flags.Changed("loudnorm") {
		job.Loudnorm = runLoudnorm
	}
	if flags.Changed("sample-rate") {
		job.SampleRate = runSampleRate
	}
	if flags.Changed("bitrate") {
		job.BitrateKbps = runBitrate
	}
	if flags.Changed("gpu") {
		job.GPUDecode = runGPU
	}
	if flags.Changed("workers") {
		job.Workers = runWorkers
	}

	job.Verbose = flagVerbose
	job.ColorMode = config.ColorMode(flagColor)
	job.LogFile = flagLogFile

	if runInteractive {
		if err := FillJob(DefaultPrompter, &job); err != nil {
			return nil, err
		}
	}

	if job.OutputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		job.OutputDir = filepath.Join(cwd, "audio_out")
	}
	job.InputDir = config.NormalizeDirArg(job.InputDir)
	job.OutputDir = config.NormalizeDirArg(job.OutputDir)

	return &job, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	job, err := assembleJob(cmd, args)
	if err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(job)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if runSaveJob != "" {
		if err := config.SaveFile(job, runSaveJob); err != nil {
			return err
		}
		log.Info("Job options saved to %s", runSaveJob)
	}

	// Fatal preconditions, checked once before any file is touched.
	if err := check.CheckTools(); err != nil {
		return err
	}

	inputAbs, err := absPath(job.InputDir)
	if err != nil {
		return fmt.Errorf("input directory not found: %s", job.InputDir)
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %s", job.OutputDir)
	}
	outputAbs, err := absPath(job.OutputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output path: %s", job.OutputDir)
	}
	if err := job.ValidatePaths(inputAbs, outputAbs); err != nil {
		return err
	}

	log.Info("=== Trackpull v%s ===", version)
	log.Info("In:  %s", job.InputDir)
	log.Info("Out: %s", job.OutputDir)
	log.Info("Mode: %s | Track: %s | Workers: %d", job.Mode, job.Selector, job.Workers)
	if job.Loudnorm {
		log.Info("Loudness: EBU R128 normalization")
	}
	if job.GPUDecode {
		log.Info("Decode: GPU (CUDA)")
	}
	log.Info("")

	files, err := pipeline.Scan(job.InputDir, job.Recursive)
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}
	if len(files) == 0 {
		log.Info("No video files found.")
		return nil
	}
	log.Info("Found %d files", len(files))

	queue := events.NewQueue(eventBuffer)
	batch := pipeline.New(job, files, queue)

	// Ctrl-C requests a cooperative cancel: pending tasks are drained as
	// cancelled, running ffmpeg processes finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			log.Warn("Cancelling... (running extractions will finish)")
			batch.Cancel()
		}
	}()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		drainEvents(job, log, queue)
	}()

	stats := batch.Run()
	queue.Close()
	<-consumerDone

	logSummary(log, stats)
	return nil
}

// drainEvents renders batch events through the logger. It runs on its own
// goroutine so the dispatcher never blocks on terminal output.
func drainEvents(job *config.Job, log *logging.Logger, queue *events.Queue) {
	for e := range queue.Events() {
		switch e.Kind {
		case events.KindResult:
			line := pipeline.FormatResultLine(pipeline.TaskResult{
				Source:  e.Source,
				Success: e.Success,
				Message: e.Message,
			})
			if e.Success {
				log.Success("%s", line)
			} else {
				log.Error("%s", line)
			}
		case events.KindLog:
			log.Info("%s", e.Text)
		case events.KindStatus:
			log.Debug(job.Verbose, "%s", e.Text)
		case events.KindProgress, events.KindSummary:
			// Progress is carried for non-CLI consumers; the summary is
			// rendered from RunStats after the batch returns.
		}
	}
}

func logSummary(log *logging.Logger, stats pipeline.RunStats) {
	log.Info("==============================")
	if stats.Cancelled {
		log.Warn("Cancelled. OK: %d, Failed: %d (of %d)", stats.Succeeded, stats.Failed, stats.Total)
	} else {
		log.Info("Done. OK: %d, Failed: %d (of %d)", stats.Succeeded, stats.Failed, stats.Total)
	}
	log.Info("  Run ID: %s", stats.RunID)
	if stats.Succeeded > 0 {
		log.Info("  Total output: %s", display.FormatBytes(stats.TotalOutputBytes))
	}
}

// absPath returns the absolute path with symlinks resolved, for comparing
// the input and output hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
