package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute_Success(t *testing.T) {
	requireShell(t)
	if err := Execute(context.Background(), []string{"sh", "-c", "exit 0"}, false); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestExecute_FailureCapturesStderr(t *testing.T) {
	requireShell(t)
	err := Execute(context.Background(), []string{"sh", "-c", "echo first >&2; echo 'moov atom not found' >&2; exit 3"}, false)

	var xe *ExitError
	if !errors.As(err, &xe) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if xe.Code != 3 {
		t.Errorf("code: got %d, want 3", xe.Code)
	}
	if !strings.Contains(xe.Stderr, "moov atom not found") {
		t.Errorf("stderr not captured: %q", xe.Stderr)
	}
	if got := xe.Tail(1); got != "moov atom not found" {
		t.Errorf("Tail(1): got %q", got)
	}
	if !strings.Contains(xe.Error(), "sh exited with status 3: first | moov atom not found") {
		t.Errorf("Error(): got %q", xe.Error())
	}
}

func TestExecute_VerboseTees(t *testing.T) {
	requireShell(t)
	var sink bytes.Buffer
	old := stderrSink
	stderrSink = &sink
	t.Cleanup(func() { stderrSink = old })

	err := Execute(context.Background(), []string{"sh", "-c", "echo listing; echo progress >&2; exit 1"}, true)
	var xe *ExitError
	if !errors.As(err, &xe) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if !strings.Contains(sink.String(), "progress") {
		t.Errorf("verbose output not tee'd: %q", sink.String())
	}
	if !strings.Contains(xe.Stderr, "progress") {
		t.Errorf("verbose output not captured: %q", xe.Stderr)
	}
	if strings.Contains(sink.String(), "listing") {
		t.Errorf("stdout reached the stderr sink: %q", sink.String())
	}
}

// Only the stderr copy may write to the sink, so repeated runs never lose
// output to a concurrent stdout writer.
func TestExecute_VerboseTeesEveryRun(t *testing.T) {
	requireShell(t)
	old := stderrSink
	t.Cleanup(func() { stderrSink = old })

	script := "i=0; while [ $i -lt 50 ]; do echo out$i; echo err$i >&2; i=$((i+1)); done"
	for run := 0; run < 20; run++ {
		var sink bytes.Buffer
		stderrSink = &sink
		if err := Execute(context.Background(), []string{"sh", "-c", script}, true); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if !strings.Contains(sink.String(), "err0\n") || !strings.Contains(sink.String(), "err49\n") {
			t.Fatalf("run %d: stderr not fully tee'd: %q", run, sink.String())
		}
		if strings.Contains(sink.String(), "out") {
			t.Fatalf("run %d: stdout reached the sink: %q", run, sink.String())
		}
	}
}

func TestExecute_MissingBinary(t *testing.T) {
	err := Execute(context.Background(), []string{"clipcat-no-such-binary"}, false)
	var xe *ExitError
	if !errors.As(err, &xe) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if xe.Code != -1 {
		t.Errorf("code: got %d, want -1", xe.Code)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound in chain, got %v", err)
	}
}

func TestExecute_Empty(t *testing.T) {
	if err := Execute(context.Background(), nil, false); !errors.Is(err, errNoCommand) {
		t.Errorf("got %v, want errNoCommand", err)
	}
}
