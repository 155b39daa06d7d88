package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// errNoCommand is returned by Execute for an empty argument slice.
var errNoCommand = errors.New("empty command")

// stderrSink receives live ffmpeg output in verbose mode.
var stderrSink io.Writer = os.Stderr

// Execute runs args (program first). Stdout is discarded. When verbose is
// set, stderr is tee'd
// to the terminal in real time; otherwise it is captured silently for
// retry classification. A failed run returns an *ExitError carrying the
// captured stderr.
func Execute(ctx context.Context, args []string, verbose bool) error {
	if len(args) == 0 {
		return errNoCommand
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, stderrSink)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return newExitError(args, stderrBuf.String(), err)
	}
	return nil
}
