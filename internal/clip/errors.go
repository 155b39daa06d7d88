package clip

import "errors"

// ErrInvalidTimecode is the sentinel wrapped by every [ParseError].
var ErrInvalidTimecode = errors.New("invalid timecode")

// ParseError reports a timecode that failed the grammar check. Text is the
// rejected input verbatim.
type ParseError struct {
	Segment int    // 1-based segment position; 0 when validated standalone.
	Bound   string // "start" or "end"; empty when validated standalone.
	Text    string
}

func (e *ParseError) Error() string {
	return ErrInvalidTimecode.Error() + ": " + e.Text
}

func (e *ParseError) Unwrap() error { return ErrInvalidTimecode }
