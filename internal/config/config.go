// Package config holds the batch job configuration: defaults, validation,
// presets, and optional YAML job files. A Job is assembled once by the CLI
// and passed (by pointer) to the packages that need it; it is never mutated
// after a batch starts.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// Mode selects how the extracted audio stream is written.
type Mode string

const (
	ModeCopy Mode = "copy" // Stream-copy the source codec unchanged (default).
	ModeMP3  Mode = "mp3"  // Re-encode with libmp3lame.
	ModeAAC  Mode = "aac"  // Re-encode with the native aac encoder.
	ModeWAV  Mode = "wav"  // Decode to 16-bit stereo PCM.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// StreamSelector identifies which audio stream to extract: either a
// zero-based index into the file's audio streams, or a declared ISO-639-2
// language tag. Exactly one of the two modes is active.
type StreamSelector struct {
	ByLanguage bool   `yaml:"by_language"`
	Index      int    `yaml:"index"`    // Used when !ByLanguage.
	Language   string `yaml:"language"` // Used when ByLanguage.
}

// String renders the selector in ffmpeg/ffprobe stream-specifier syntax:
// "a:0" for index selection, "a:m:language:eng" for language selection.
func (s StreamSelector) String() string {
	if s.ByLanguage {
		return "a:m:language:" + s.Language
	}
	return fmt.Sprintf("a:%d", s.Index)
}

// Validate checks the active selection mode's value. Language codes are
// only shape-checked; ffmpeg itself decides whether the file carries a
// stream with that tag.
func (s StreamSelector) Validate() error {
	if s.ByLanguage {
		if len(s.Language) != 3 || strings.ToLower(s.Language) != s.Language {
			return fmt.Errorf("invalid language code %q (use a 3-letter ISO-639-2 code, e.g. eng)", s.Language)
		}
		return nil
	}
	if s.Index < 0 {
		return fmt.Errorf("invalid track index %d (must be >= 0)", s.Index)
	}
	return nil
}

// Job holds all settings for one extraction batch. Fields are grouped by
// concern with inline documentation of defaults. Zero values for SampleRate
// and BitrateKbps mean "leave at encoder default".
type Job struct {
	// Paths.
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"` // Defaults to <cwd>/audio_out when empty.

	// Discovery.
	Recursive    bool `yaml:"recursive"`     // Default: true.
	PreserveTree bool `yaml:"preserve_tree"` // Default: true. Mirror input tree under output root.

	// Extraction.
	Mode        Mode           `yaml:"mode"`         // Default: "copy".
	Selector    StreamSelector `yaml:"selector"`     // Default: index 0.
	Loudnorm    bool           `yaml:"loudnorm"`     // EBU R128 loudness normalization.
	SampleRate  int            `yaml:"sample_rate"`  // Hz; 0 = keep source rate.
	BitrateKbps int            `yaml:"bitrate_kbps"` // kbps; 0 = encoder default.
	GPUDecode   bool           `yaml:"gpu_decode"`   // CUDA-accelerated decoding.

	// Scheduling.
	Workers int `yaml:"workers"` // Default: max(2, NumCPU/2).

	// Display and logging (not part of job files).
	Verbose   bool      `yaml:"-"`
	ColorMode ColorMode `yaml:"-"` // Default: "auto".
	LogFile   string    `yaml:"-"` // Optional log file path.
}

// DefaultWorkers returns the default worker-pool size: half the logical
// CPUs, but never fewer than two.
func DefaultWorkers() int {
	w := runtime.NumCPU() / 2
	if w < 2 {
		w = 2
	}
	return w
}

// Default returns a Job with all defaults. Used as the base before job-file,
// preset, and CLI flag overrides are applied.
func Default() Job {
	return Job{
		Recursive:    true,
		PreserveTree: true,
		Mode:         ModeCopy,
		Selector:     StreamSelector{Index: 0},
		Workers:      DefaultWorkers(),
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, the stream selector, and numeric options.
// It requires non-empty directories; the output directory is defaulted by
// the CLI before validation.
func (j *Job) Validate() error {
	switch j.Mode {
	case ModeCopy, ModeMP3, ModeAAC, ModeWAV:
		// valid
	default:
		return errors.New("invalid mode (use 'copy', 'mp3', 'aac' or 'wav')")
	}

	switch j.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := j.Selector.Validate(); err != nil {
		return err
	}

	if j.SampleRate < 0 {
		return fmt.Errorf("invalid sample rate %d (must be a positive Hz value)", j.SampleRate)
	}
	if j.BitrateKbps < 0 {
		return fmt.Errorf("invalid bitrate %d (must be a positive kbps value)", j.BitrateKbps)
	}
	if j.Workers < 1 {
		return fmt.Errorf("invalid worker count %d (must be >= 1)", j.Workers)
	}

	if j.InputDir == "" {
		return errors.New("input directory is required")
	}
	if j.OutputDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or
// equal to) the resolved input directory. This prevents the scanner from
// discovering the batch's own output files on a second run. Both arguments
// must be absolute, symlink-resolved paths.
func (j *Job) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
