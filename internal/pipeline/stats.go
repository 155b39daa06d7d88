package pipeline

import "time"

// RunStats describes a finished (or dry) run.
type RunStats struct {
	RunID    string
	WorkDir  string
	Clips    int
	Segments int // Segments planned.
	Trimmed  int // Segments trimmed successfully.

	TotalInputBytes int64 // Sum of distinct source sizes.
	OutputBytes     int64
	Elapsed         time.Duration
}

// KeptPercent returns the output size as a percentage of the input size,
// or 0 when the input size is unknown.
func (s *RunStats) KeptPercent() int64 {
	if s.TotalInputBytes <= 0 {
		return 0
	}
	return s.OutputBytes * 100 / s.TotalInputBytes
}
