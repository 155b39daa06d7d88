package planner

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/backmassage/clipcat/internal/clip"
	"github.com/backmassage/clipcat/internal/config"
	"github.com/backmassage/clipcat/internal/display"
	"github.com/backmassage/clipcat/internal/naming"
)

// DefaultMuxQueueSize is the initial -max_muxing_queue_size.
const DefaultMuxQueueSize = 1024

// BuildPlan produces the job list for clips. Jobs follow clip order, then
// segment order within each clip, which is the order of the final output.
// workDir is the temporary workspace that receives segment files and the
// manifest.
func BuildPlan(cfg *config.Config, clips []clip.Clip, workDir string) (*Plan, error) {
	ext := cfg.SegmentExtension()
	plan := &Plan{
		WorkDir:      workDir,
		ManifestPath: filepath.Join(workDir, naming.ManifestFileName(cfg.OutputPath)),
		OutputPath:   cfg.OutputPath,
		SegmentExt:   ext,
		MuxQueueSize: DefaultMuxQueueSize,
	}

	for ci, c := range clips {
		for si, seg := range c.Segments {
			name, err := naming.SegmentFileName(ci, c.Filename, si, ext)
			if err != nil {
				return nil, fmt.Errorf("clip %d: %w", ci+1, err)
			}
			plan.Jobs = append(plan.Jobs, SegmentJob{
				ClipIndex:    ci,
				SegmentIndex: si,
				SegmentCount: len(c.Segments),
				Source:       c.Filename,
				Start:        seg.Start,
				End:          seg.End,
				TempPath:     filepath.Join(workDir, name),
			})
		}
	}
	return plan, nil
}

// BoundsNote checks a job against the probed source duration (seconds) and
// returns a warning, or "" when the range looks sane. Trimming still runs:
// ffmpeg clamps out-of-range bounds itself.
func BoundsNote(j SegmentJob, duration float64) string {
	if j.Start.IsSet() && j.End.IsSet() && j.Start.Seconds() >= j.End.Seconds() {
		return fmt.Sprintf("start %s is not before end %s; segment will be empty", j.Start, j.End)
	}
	if duration <= 0 {
		return ""
	}
	if j.Start.IsSet() && j.Start.Seconds() >= duration {
		return fmt.Sprintf("start %s is past the source duration %s", j.Start, display.FormatSeconds(duration))
	}
	if j.End.IsSet() && j.End.Seconds() > duration {
		return fmt.Sprintf("end %s is past the source duration %s", j.End, display.FormatSeconds(duration))
	}
	return ""
}

// Rows renders the plan as table rows: #, source, segment, start, end, temp file.
func (p *Plan) Rows() [][]string {
	rows := make([][]string, 0, len(p.Jobs))
	for i, j := range p.Jobs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			j.Source,
			j.Label(),
			orDash(j.Start, "start"),
			orDash(j.End, "end"),
			filepath.Base(j.TempPath),
		})
	}
	return rows
}

func orDash(tc clip.Timecode, word string) string {
	if tc.IsSet() {
		return tc.String()
	}
	return "(" + word + ")"
}

func segmentLabel(n, total int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(total)
}
