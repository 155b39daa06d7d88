package ffmpeg

import (
	"fmt"
	"io"
	"strings"
)

// WriteManifest writes a concat demuxer list with one "file '<path>'" line
// per path, in order. Single quotes inside a path are closed, escaped, and
// reopened ('\'') as the demuxer's quoting rules require.
func WriteManifest(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := io.WriteString(w, ManifestLine(p)); err != nil {
			return fmt.Errorf("write concat list: %w", err)
		}
	}
	return nil
}

// ManifestLine returns the newline-terminated manifest entry for path.
func ManifestLine(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'\n"
}
