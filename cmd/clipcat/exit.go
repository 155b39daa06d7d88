package main

import (
	"errors"

	"github.com/backmassage/clipcat/internal/check"
	"github.com/backmassage/clipcat/internal/pipeline"
)

// Process exit codes.
const (
	exitOK       = 0
	exitUsage    = 1 // Bad input, usage, or config.
	exitResource = 2 // Temporary directory, lock, or manifest failure.
	exitTool     = 3 // ffmpeg failed.
)

// codedError pins an exit code to an error raised by the CLI itself.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	switch pipeline.ErrorClass(err) {
	case pipeline.ClassResource:
		return exitResource
	case pipeline.ClassTool:
		return exitTool
	}
	switch {
	case errors.Is(err, check.ErrFFmpegNotFound):
		return exitTool
	case errors.Is(err, check.ErrTempDirUnwritable):
		return exitResource
	}
	return exitUsage
}
