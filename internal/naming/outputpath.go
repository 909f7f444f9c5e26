// Package naming derives output file paths: the stem from the input path
// (mirrored or flattened), the extension from the mode and source codec.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/trackpull/internal/config"
)

// copyExtensions maps a source audio codec to its canonical container
// extension for stream-copy output.
var copyExtensions = map[string]string{
	"aac":       ".m4a",
	"mp3":       ".mp3",
	"ac3":       ".ac3",
	"eac3":      ".eac3",
	"dts":       ".dts",
	"opus":      ".opus",
	"vorbis":    ".ogg",
	"flac":      ".flac",
	"pcm_s16le": ".wav",
	"truehd":    ".thd",
}

// defaultCopyExtension is used for unknown or undetected codecs. The AAC
// container is the historical fallback; see DESIGN.md.
const defaultCopyExtension = ".m4a"

// CopyExtension returns the container extension for a stream-copied codec,
// falling back to the default for unknown or empty codec names.
func CopyExtension(codec string) string {
	if ext, ok := copyExtensions[codec]; ok {
		return ext
	}
	return defaultCopyExtension
}

// ExtensionFor returns the output extension for a mode. The codec argument
// is only consulted in copy mode (pass "" when detection found nothing).
func ExtensionFor(mode config.Mode, codec string) string {
	switch mode {
	case config.ModeMP3:
		return ".mp3"
	case config.ModeAAC:
		return ".m4a"
	case config.ModeWAV:
		return ".wav"
	default: // ModeCopy
		return CopyExtension(codec)
	}
}

// OutputPath computes the destination for src. With preserveTree the path
// mirrors src's position relative to inputRoot (directories included);
// otherwise only the filename stem is kept, flattening the structure.
// Deterministic: identical arguments always yield the same path.
func OutputPath(src, inputRoot, outputRoot string, preserveTree bool, ext string) (string, error) {
	var stem string
	if preserveTree {
		rel, err := filepath.Rel(inputRoot, src)
		if err != nil {
			return "", fmt.Errorf("relativize %q under %q: %w", src, inputRoot, err)
		}
		stem = strings.TrimSuffix(rel, filepath.Ext(rel))
	} else {
		base := filepath.Base(src)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(outputRoot, stem+ext), nil
}

// EnsureParentDir creates the destination's parent directory tree.
// Idempotent and safe under concurrent calls for overlapping directories:
// an already-existing directory is a no-op, never an error.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
