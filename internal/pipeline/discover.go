package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Recognized video container extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
}

// Scan enumerates candidate input files under root: all descendants when
// recursive, direct children only otherwise. Matching is by extension,
// case-insensitive. Callers must not rely on the order beyond set equality;
// the slice is sorted only so logs are stable between runs.
func Scan(root string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isVideoFile(d, path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(root, e.Name())
			if isVideoFile(e, path) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isVideoFile(d fs.DirEntry, path string) bool {
	if !d.Type().IsRegular() {
		return false
	}
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
