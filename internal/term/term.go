// Package term decides whether console output is colored and holds the
// ANSI styles the logger and banner paint with.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/clipcat/internal/config"
)

// Style is an ANSI SGR prefix. Painting is a no-op while colors are off.
type Style string

// Styles by role.
const (
	Failure Style = "\033[1;91m" // Bright red.
	Success Style = "\033[1;92m" // Bright green.
	Caution Style = "\033[1;93m" // Bright yellow.
	Notice  Style = "\033[1;94m" // Bright blue.
	Detail  Style = "\033[1;96m" // Bright cyan.
	Accent  Style = "\033[1;95m" // Bright magenta.

	reset = "\033[0m"
)

var enabled bool

// Paint wraps text in s and a reset sequence when colors are enabled.
func (s Style) Paint(text string) string {
	if !enabled || s == "" {
		return text
	}
	return string(s) + text + reset
}

// Configure turns colors on or off for the process. Called once during
// startup by logging.NewLogger.
func Configure(mode config.ColorMode) {
	enabled = ShouldColor(mode, os.Stdout, os.Getenv)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return enabled }

// ShouldColor resolves mode for out. In auto mode, colors need a TTY and
// are vetoed by NO_COLOR (https://no-color.org) or TERM=dumb; CLICOLOR_FORCE
// turns them on without a TTY.
func ShouldColor(mode config.ColorMode, out *os.File, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" || strings.EqualFold(getenv("TERM"), "dumb") {
		return false
	}
	if v := getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin and
// MSYS pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
