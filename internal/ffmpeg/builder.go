// Package ffmpeg builds and executes the ffmpeg commands for audio
// extraction. Build is a pure function of the job and the two paths;
// Execute is the only place a child process is started.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/trackpull/internal/config"
)

// LoudnormFilter is the EBU R128 normalization filter: integrated loudness
// -16 LUFS, true-peak ceiling -1.5 dBTP, loudness range 11 LU. Fixed
// constants, not configurable per job.
const LoudnormFilter = "loudnorm=I=-16:TP=-1.5:LRA=11"

// Build constructs the complete ffmpeg argument slice for one file,
// including the program name at index 0. The command always suppresses
// video, subtitle, and data streams, maps exactly the selected audio
// stream, and overwrites dst if it exists.
func Build(job *config.Job, src, dst string) []string {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// Hardware-accelerated decode must precede the input it applies to.
	if job.GPUDecode {
		args = append(args, "-hwaccel", "cuda")
	}

	// --- Input and stream maps ---
	args = append(args, "-i", src,
		"-vn", "-sn", "-dn",
		"-map", "0:"+job.Selector.String(),
	)

	// --- Audio codec ---
	args = appendAudioCodec(args, job)

	// --- Loudness normalization ---
	if job.Loudnorm {
		args = append(args, "-af", LoudnormFilter)
	}

	// --- Output ---
	args = append(args, dst)

	return args
}

// appendAudioCodec adds the mode-specific codec arguments.
func appendAudioCodec(args []string, job *config.Job) []string {
	switch job.Mode {
	case config.ModeCopy:
		args = append(args, "-c:a", "copy")

	case config.ModeMP3:
		args = append(args, "-c:a", "libmp3lame")
		if job.BitrateKbps > 0 {
			args = append(args, "-b:a", fmt.Sprintf("%dk", job.BitrateKbps))
		}
		args = appendSampleRate(args, job)

	case config.ModeAAC:
		args = append(args, "-c:a", "aac")
		if job.BitrateKbps > 0 {
			args = append(args, "-b:a", fmt.Sprintf("%dk", job.BitrateKbps))
		} else {
			// Pin a quality tier instead of leaving the encoder default.
			args = append(args, "-q:a", "2")
		}
		args = appendSampleRate(args, job)

	case config.ModeWAV:
		// Always 16-bit signed PCM, forced stereo.
		args = append(args, "-c:a", "pcm_s16le", "-ac", "2")
		args = appendSampleRate(args, job)
	}
	return args
}

func appendSampleRate(args []string, job *config.Job) []string {
	if job.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(job.SampleRate))
	}
	return args
}
