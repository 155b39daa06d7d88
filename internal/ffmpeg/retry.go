package ffmpeg

import "github.com/backmassage/clipcat/internal/planner"

// RetryAction identifies which fix was applied (or none).
type RetryAction int

const (
	RetryNone          RetryAction = iota
	RetryIncreaseMux               // Raise max_muxing_queue_size to 16384.
	RetryFixTimestamps             // Regenerate PTS and shift negative timestamps.
)

func (a RetryAction) String() string {
	switch a {
	case RetryIncreaseMux:
		return "raise mux queue size"
	case RetryFixTimestamps:
		return "regenerate timestamps"
	default:
		return "none"
	}
}

const (
	maxAttempts      = 3
	muxQueueEscalate = 16384
)

// RetryState tracks which fallback fixes have been applied across retry
// attempts of a single ffmpeg invocation.
type RetryState struct {
	Attempt     int
	MaxAttempts int
	Strict      bool

	MuxQueueSize int
	TimestampFix bool
}

// NewRetryState initializes a RetryState from the plan's initial values.
// A strict state never retries.
func NewRetryState(plan *planner.Plan, strict bool) *RetryState {
	return &RetryState{
		MaxAttempts:  maxAttempts,
		Strict:       strict,
		MuxQueueSize: plan.MuxQueueSize,
		TimestampFix: plan.TimestampFix,
	}
}

// Advance inspects stderr from a failed ffmpeg run, finds the first matching
// error pattern whose fix has not yet been applied, applies that fix, and
// returns the action taken. Returns RetryNone when no fixable pattern
// matches, the attempt limit is reached, or the state is strict.
//
// Pattern evaluation order: mux queue, then timestamp.
func (s *RetryState) Advance(stderr string) RetryAction {
	if s.Strict {
		return RetryNone
	}
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return RetryNone
	}

	if s.MuxQueueSize < muxQueueEscalate && MatchMuxQueueOverflow(stderr) {
		s.MuxQueueSize = muxQueueEscalate
		return RetryIncreaseMux
	}
	if !s.TimestampFix && MatchTimestampIssue(stderr) {
		s.TimestampFix = true
		return RetryFixTimestamps
	}
	return RetryNone
}
