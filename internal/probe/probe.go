// Package probe provides ffprobe-based stream inspection. A single call
// restricted to the selected audio stream asks for exactly the codec name
// field, nothing more.
package probe

import (
	"os/exec"
	"strings"
)

// DetectAudioCodec runs ffprobe against the selected audio stream of file
// and returns its codec name. The second return value is false when the
// tool exits non-zero or produces no output; that is not an error — callers
// supply a fallback. One invocation per call, no retries.
func DetectAudioCodec(file, selector string) (string, bool) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", selector,
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	)

	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return ParseCodecOutput(out)
}

// ParseCodecOutput extracts the codec name from raw ffprobe output: the
// first line, trimmed of whitespace. Exported for testing without a real
// ffprobe binary.
func ParseCodecOutput(out []byte) (string, bool) {
	s := strings.TrimSpace(string(out))
	if s == "" {
		return "", false
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s), true
}
