package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr output into retryable
// error categories. Checked in order by [RetryState.Advance].
var (
	reMuxQueueOverflow = regexp.MustCompile(
		`Too many packets buffered for output stream`)

	reTimestampIssue = regexp.MustCompile(
		`(?i)Non-monotonous DTS|non monotonically increasing dts|` +
			`DTS .*out of order|PTS .*out of order|` +
			`pts has no value|missing PTS|Timestamps are unset|` +
			`Application provided invalid, non monotonically increasing`)
)

// MatchMuxQueueOverflow reports whether stderr contains a mux queue overflow.
func MatchMuxQueueOverflow(stderr string) bool {
	return reMuxQueueOverflow.MatchString(stderr)
}

// MatchTimestampIssue reports whether stderr contains a timestamp discontinuity.
func MatchTimestampIssue(stderr string) bool {
	return reTimestampIssue.MatchString(stderr)
}

// stderrTailLines is how many trailing stderr lines an ExitError keeps in
// its message.
const stderrTailLines = 5

// ExitError reports a failed ffmpeg invocation. Code is the process exit
// status, or -1 when the process could not be started or was killed.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.program(), e.Code)
	if e.Code < 0 {
		msg = fmt.Sprintf("%s failed: %v", e.program(), e.Err)
	}
	if tail := e.Tail(stderrTailLines); tail != "" {
		msg += ": " + strings.ReplaceAll(tail, "\n", " | ")
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Tail returns the last n non-empty stderr lines joined by newlines.
func (e *ExitError) Tail(n int) string {
	var lines []string
	for _, l := range strings.Split(e.Stderr, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func (e *ExitError) program() string {
	if len(e.Args) == 0 {
		return "ffmpeg"
	}
	return e.Args[0]
}

func newExitError(args []string, stderr string, err error) *ExitError {
	code := -1
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		code = xe.ExitCode()
	}
	return &ExitError{Args: args, Code: code, Stderr: stderr, Err: err}
}
