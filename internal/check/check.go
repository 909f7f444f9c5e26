// Package check provides pre-batch dependency validation (CheckTools) and
// the interactive diagnostics flow behind the check command (RunCheck).
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckTools when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckTools is the pre-batch precondition: ffmpeg and ffprobe must both be
// resolvable on PATH and answer -version. Absence is fatal for the whole
// batch, checked exactly once before any file is processed.
func CheckTools() error {
	if !toolResponds("ffmpeg") {
		return ErrFfmpegNotFound
	}
	if !toolResponds("ffprobe") {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive diagnostics flow: tool versions, available
// audio encoders, and minimal test encodes for each extraction mode.
// Informational only; returns false when a required tool is missing.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool("ffmpeg", log)
	ok = checkTool("ffprobe", log) && ok

	if ok {
		checkAudioEncoders(log)
		checkEncode(log, "MP3", "libmp3lame")
		checkEncode(log, "AAC", "aac")
		checkEncode(log, "PCM", "pcm_s16le")
	}
	return ok
}

// checkTool verifies the tool is on PATH and logs its version line.
func checkTool(name string, log Logger) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkAudioEncoders lists the relevant audio encoders ffmpeg reports.
func checkAudioEncoders(log Logger) {
	log.Info("Audio encoders:")
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "mp3") ||
			strings.Contains(lower, " aac") ||
			strings.Contains(lower, "pcm_s16le") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkEncode runs a minimal lavfi sine encode to verify the encoder works.
func checkEncode(log Logger, label, encoder string) {
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", encoder, "-f", "null", "-",
	) {
		log.Success("%s encoder works", label)
	} else {
		log.Error("%s encoder test failed", label)
	}
}

func toolResponds(name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}
	return runSilent(name, "-version")
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
