package pipeline

import (
	"errors"
	"fmt"
)

// Class groups run failures by what the caller should report.
type Class int

const (
	ClassNone     Class = iota
	ClassInput          // Bad sources or output path.
	ClassResource       // Workspace, manifest, or lock failure.
	ClassTool           // ffmpeg failed or the run was interrupted.
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input"
	case ClassResource:
		return "resource"
	case ClassTool:
		return "tool"
	default:
		return "none"
	}
}

// Sentinel errors returned (wrapped) by Run.
var (
	ErrOutputExists = errors.New("output file already exists (use --force to overwrite)")
	ErrLocked       = errors.New("another clipcat run is writing this output")
	ErrTrimFailed   = errors.New("trimming clips failed")
	ErrConcatFailed = errors.New("concatenating clips failed")
)

// RunError attaches a Class to a pipeline failure.
type RunError struct {
	Class Class
	Err   error
}

func (e *RunError) Error() string { return e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// ErrorClass returns the class of err, or ClassNone for nil and unclassified
// errors.
func ErrorClass(err error) Class {
	var re *RunError
	if errors.As(err, &re) {
		return re.Class
	}
	return ClassNone
}

func inputErr(format string, args ...interface{}) error {
	return &RunError{Class: ClassInput, Err: fmt.Errorf(format, args...)}
}

func resourceErr(format string, args ...interface{}) error {
	return &RunError{Class: ClassResource, Err: fmt.Errorf(format, args...)}
}

func toolErr(format string, args ...interface{}) error {
	return &RunError{Class: ClassTool, Err: fmt.Errorf(format, args...)}
}
