package clip

import (
	"regexp"
	"strconv"
	"strings"
)

// timecodePattern accepts [H+:]MM:SS[.F+] or the empty string. Digits are
// ASCII only, which is what ffmpeg's -ss/-to accept.
var timecodePattern = regexp.MustCompile(`^((\d+:)?\d{2}:\d{2}(\.\d+)?)?$`)

// Timecode is a validated time position. The zero value means "not set".
type Timecode string

// IsSet reports whether the timecode holds a value.
func (t Timecode) IsSet() bool { return t != "" }

// String returns the timecode verbatim, or "" when unset.
func (t Timecode) String() string { return string(t) }

// Seconds converts the timecode to seconds. Unset timecodes return 0.
// Minutes and seconds are not range-checked, matching the grammar: "00:75"
// is 75 seconds.
func (t Timecode) Seconds() float64 {
	if !t.IsSet() {
		return 0
	}
	parts := strings.Split(string(t), ":")
	var total float64
	for _, p := range parts[:len(parts)-1] {
		n, _ := strconv.ParseFloat(p, 64)
		total = total*60 + n
	}
	sec, _ := strconv.ParseFloat(parts[len(parts)-1], 64)
	return total*60 + sec
}

// ValidateTimecode checks raw against the timecode grammar. An empty string
// is valid and yields an unset Timecode. A match is returned unchanged; no
// padding or reformatting is applied.
func ValidateTimecode(raw string) (Timecode, error) {
	if !timecodePattern.MatchString(raw) {
		return "", &ParseError{Text: raw}
	}
	return Timecode(raw), nil
}
