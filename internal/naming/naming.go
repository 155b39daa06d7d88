package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoFileName is returned when a clip source path has no file name
// component (e.g. "", ".", "/").
var ErrNoFileName = errors.New("clip source path does not include a file name")

// SourceBase returns the file name component of a clip source path.
func SourceBase(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrNoFileName
	}
	base := filepath.Base(source)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrNoFileName, source)
	}
	return base, nil
}

// SegmentFileName returns the temporary file name for one trimmed segment:
//
//	<clipIdx>.<source base>.tmp.<segIdx><ext>
//
// Indices are zero-based. The clip index keeps names unique when the same
// source appears in several clips. ext includes the leading dot.
func SegmentFileName(clipIdx int, source string, segIdx int, ext string) (string, error) {
	base, err := SourceBase(source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%s.tmp.%d%s", clipIdx, base, segIdx, ext), nil
}

// ManifestFileName returns the concat list file name for an output path.
func ManifestFileName(output string) string {
	base := filepath.Base(output)
	if base == "." || base == string(filepath.Separator) {
		base = "output"
	}
	return base + ".clipcat_concat.txt"
}

// LockPath returns the lock file guarding an output path against
// concurrent runs.
func LockPath(output string) string {
	return output + ".clipcat.lock"
}
