package planner

import "github.com/backmassage/clipcat/internal/clip"

// SegmentJob is one trim: a range of a source copied into a temporary file.
type SegmentJob struct {
	ClipIndex    int // Zero-based position of the clip on the command line.
	SegmentIndex int // Zero-based position of the segment within its clip.
	SegmentCount int // Number of segments in the clip.

	Source   string
	Start    clip.Timecode
	End      clip.Timecode
	TempPath string
}

// Label returns the "segment i/n" progress label.
func (j SegmentJob) Label() string {
	return segmentLabel(j.SegmentIndex+1, j.SegmentCount)
}

// Plan holds every job of a run in execution order, plus the concat step.
type Plan struct {
	Jobs []SegmentJob

	WorkDir      string
	ManifestPath string
	OutputPath   string
	SegmentExt   string

	// Retry initial state for every ffmpeg invocation.
	MuxQueueSize int
	TimestampFix bool
}

// Sources returns each distinct clip source in first-seen order.
func (p *Plan) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range p.Jobs {
		if !seen[j.Source] {
			seen[j.Source] = true
			out = append(out, j.Source)
		}
	}
	return out
}
