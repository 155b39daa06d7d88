package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/clipcat/internal/clip"
)

// Media file extensions ffmpeg commonly stream-copies (lowercase, with
// leading dot). Sources with other extensions are still used, with a warning.
var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".vob":  true,
	".ogv":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
	".opus": true,
}

// IsMediaFile reports whether path has a known media extension
// (case-insensitive).
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// source is one distinct clip source.
type source struct {
	Path string // As given in the clip spec.
	Abs  string
	Size int64
}

// collectSources returns each distinct source in first-seen order after
// checking that it exists and is a regular file.
func collectSources(clips []clip.Clip) ([]source, error) {
	seen := make(map[string]bool)
	var out []source
	for i, c := range clips {
		if seen[c.Filename] {
			continue
		}
		seen[c.Filename] = true

		abs, err := filepath.Abs(c.Filename)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i+1, err)
		}
		fi, err := os.Stat(c.Filename)
		if err != nil {
			return nil, fmt.Errorf("clip %d: source not found: %s", i+1, c.Filename)
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("clip %d: source is not a regular file: %s", i+1, c.Filename)
		}
		out = append(out, source{Path: c.Filename, Abs: filepath.Clean(abs), Size: fi.Size()})
	}
	return out, nil
}
