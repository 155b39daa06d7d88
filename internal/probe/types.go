package probe

import (
	"fmt"
	"strings"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64 // Seconds; 0 when unknown.
	Size       int64
	BitRate    int64
}

// Stream holds the properties of one stream that matter for stream copy.
type Stream struct {
	Index         int
	CodecType     string // "video", "audio", "subtitle", "data", "attachment".
	Codec         string
	Width         int
	Height        int
	IsAttachedPic bool
}

// ProbeResult is the parsed output of a single ffprobe JSON call.
type ProbeResult struct {
	Format  FormatInfo
	Streams []Stream
}

// Count returns the number of streams of codecType, ignoring attached
// pictures (cover art) for video.
func (p *ProbeResult) Count(codecType string) int {
	n := 0
	for _, s := range p.Streams {
		if s.CodecType == codecType && !s.IsAttachedPic {
			n++
		}
	}
	return n
}

// HasMedia reports whether the source has at least one audio or video stream.
func (p *ProbeResult) HasMedia() bool {
	return p.Count("video") > 0 || p.Count("audio") > 0
}

// Summary returns a one-line description such as
// "mov,mp4,m4a,3gp,3g2,mj2: 1 video, 1 audio".
func (p *ProbeResult) Summary() string {
	var parts []string
	for _, kind := range []string{"video", "audio", "subtitle"} {
		if n := p.Count(kind); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no media streams")
	}
	name := p.Format.FormatName
	if name == "" {
		name = "unknown format"
	}
	return name + ": " + strings.Join(parts, ", ")
}
