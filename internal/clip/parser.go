package clip

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characters with special meaning in a clip spec.
const (
	Sentinel         = '@'  // Ends the filename and starts the segment list.
	EscapeMarker     = '\\' // Makes the next filename character literal.
	RangeSeparator   = '-'  // Separates a segment's start and end.
	SegmentDelimiter = ','  // Separates segments.
)

// Segment is one range of a source file to keep. An unset Start means
// "from the beginning"; an unset End means "to the end".
type Segment struct {
	Start Timecode
	End   Timecode
}

// IsOpen reports whether neither bound is set, i.e. the whole file.
func (s Segment) IsOpen() bool { return !s.Start.IsSet() && !s.End.IsSet() }

// Clip is the parsed form of one clip spec. Segments is never empty and
// keeps the order in which segments appear in the spec.
type Clip struct {
	Filename string
	Segments []Segment
}

type parseState int

const (
	stateFilename parseState = iota
	stateSegmentStart
	stateSegmentEnd
)

func (s parseState) String() string {
	switch s {
	case stateFilename:
		return "filename"
	case stateSegmentStart:
		return "segment-start"
	case stateSegmentEnd:
		return "segment-end"
	}
	return "unknown"
}

// scanner holds the buffers the state machine writes into.
type scanner struct {
	escaped  bool
	filename strings.Builder
	start    strings.Builder
	end      strings.Builder
	segments []Segment
}

// Parse scans spec into a Clip. It returns a *ParseError for the first
// start or end timecode that fails [ValidateTimecode]; segments are
// validated left to right and the start of a segment before its end.
func Parse(spec string) (Clip, error) {
	var sc scanner
	state := stateFilename

	for i := 0; i < len(spec); {
		r, size := utf8.DecodeRuneInString(spec[i:])
		next, err := sc.step(state, r, spec[i:i+size])
		if err != nil {
			return Clip{}, err
		}
		state = next
		i += size
	}

	if sc.escaped {
		// Nothing follows the marker; keep it as typed.
		sc.filename.WriteRune(EscapeMarker)
	}
	if sc.start.Len() > 0 || sc.end.Len() > 0 {
		if err := sc.flush(); err != nil {
			return Clip{}, err
		}
	}
	if len(sc.segments) == 0 {
		sc.segments = append(sc.segments, Segment{})
	}

	return Clip{
		Filename: strings.TrimRightFunc(sc.filename.String(), unicode.IsSpace),
		Segments: sc.segments,
	}, nil
}

// step is the transition function. raw is the source text of r, which
// differs from string(r) only for invalid UTF-8; filename bytes are copied
// through unchanged.
func (sc *scanner) step(state parseState, r rune, raw string) (parseState, error) {
	switch state {
	case stateFilename:
		switch {
		case sc.escaped:
			sc.filename.WriteString(raw)
			sc.escaped = false
		case r == EscapeMarker:
			sc.escaped = true
		case r == Sentinel:
			return stateSegmentStart, nil
		default:
			sc.filename.WriteString(raw)
		}
		return stateFilename, nil

	case stateSegmentStart:
		switch {
		case unicode.IsSpace(r):
		case r == RangeSeparator:
			return stateSegmentEnd, nil
		default:
			sc.start.WriteString(raw)
		}
		return stateSegmentStart, nil

	case stateSegmentEnd:
		switch {
		case unicode.IsSpace(r):
		case r == SegmentDelimiter:
			if err := sc.flush(); err != nil {
				return state, err
			}
			return stateSegmentStart, nil
		default:
			sc.end.WriteString(raw)
		}
		return stateSegmentEnd, nil
	}
	return state, nil
}

// flush validates the buffered bounds, appends the segment, and resets both
// buffers.
func (sc *scanner) flush() error {
	n := len(sc.segments) + 1

	start, err := ValidateTimecode(sc.start.String())
	if err != nil {
		return withPosition(err, n, "start")
	}
	end, err := ValidateTimecode(sc.end.String())
	if err != nil {
		return withPosition(err, n, "end")
	}

	sc.segments = append(sc.segments, Segment{Start: start, End: end})
	sc.start.Reset()
	sc.end.Reset()
	return nil
}

func withPosition(err error, segment int, bound string) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Segment = segment
		pe.Bound = bound
	}
	return err
}
