package clip

import "strings"

// Format serializes c back into a clip spec that [Parse] maps to an equal
// Clip. Backslashes and sentinels in the filename are escaped. A clip whose
// only segment is open is written as the bare filename.
func Format(c Clip) string {
	var b strings.Builder
	b.WriteString(EscapeFilename(c.Filename))

	if len(c.Segments) == 0 || (len(c.Segments) == 1 && c.Segments[0].IsOpen()) {
		return b.String()
	}

	b.WriteRune(Sentinel)
	for i, seg := range c.Segments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(seg.Start.String())
		b.WriteRune(RangeSeparator)
		b.WriteString(seg.End.String())
	}
	// A trailing open range leaves both buffers empty at end of input and
	// would be dropped; the delimiter flushes it explicitly.
	if c.Segments[len(c.Segments)-1].IsOpen() {
		b.WriteRune(SegmentDelimiter)
	}
	return b.String()
}

// EscapeFilename escapes the characters [Parse] treats specially inside a
// filename.
func EscapeFilename(name string) string {
	if !strings.ContainsAny(name, string([]rune{EscapeMarker, Sentinel})) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		if name[i] == EscapeMarker || name[i] == Sentinel {
			b.WriteByte(EscapeMarker)
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
