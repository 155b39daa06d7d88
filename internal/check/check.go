// Package check provides system diagnostics (the check command) and
// pre-run dependency validation (CheckDeps) for ffmpeg, its concat demuxer,
// ffprobe, and the temporary workspace directory.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/backmassage/clipcat/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or directory
// is unusable.
var (
	ErrFFmpegNotFound     = errors.New("ffmpeg not found on PATH")
	ErrNoConcatDemuxer    = errors.New("ffmpeg lacks the concat demuxer")
	ErrTempDirUnwritable  = errors.New("temp dir is not writable")
	errFFprobeUnavailable = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the check command: it prints the availability of ffmpeg,
// its concat demuxer, ffprobe, and the temp dir. It reports false when a
// required item is missing; a missing ffprobe only warns.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFFmpeg(cfg, log)
	if ok {
		ok = checkConcat(cfg, log)
	}
	checkFFprobe(cfg, log)
	if err := TempDirWritable(cfg.Workspace.TempDir); err != nil {
		log.Error("%v", err)
		ok = false
	} else {
		log.Success("temp dir: %s", cfg.Workspace.TempDir)
	}
	return ok
}

// checkFFmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFFmpeg(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.FFmpeg.Binary)
	if err != nil {
		log.Error("%s not found", cfg.FFmpeg.Binary)
		return false
	}
	log.Debug("ffmpeg path: %s", path)
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
	return true
}

// checkConcat verifies ffmpeg lists the concat demuxer.
func checkConcat(cfg *config.Config, log Logger) bool {
	out, err := exec.Command(cfg.FFmpeg.Binary, "-hide_banner", "-demuxers").Output()
	if err != nil {
		log.Warn("Could not list demuxers: %v", err)
		return true
	}
	if !hasDemuxer(string(out), "concat") {
		log.Error("%v", ErrNoConcatDemuxer)
		return false
	}
	log.Success("concat demuxer available")
	return true
}

// checkFFprobe reports ffprobe availability. Probing is optional.
func checkFFprobe(cfg *config.Config, log Logger) {
	if !cfg.FFmpeg.Probe {
		log.Info("ffprobe: disabled by config")
		return
	}
	if err := FFprobeAvailable(cfg); err != nil {
		log.Warn("%s not found; sources will not be probed", cfg.FFmpeg.FFprobeBinary)
		return
	}
	out, err := exec.Command(cfg.FFmpeg.FFprobeBinary, "-version").Output()
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return
	}
	log.Success("ffprobe: %s", firstLine(string(out)))
}

// CheckDeps is the pre-run validation: ffmpeg must be on PATH and the temp
// dir must be writable. Returns a sentinel error (possibly wrapped) on
// failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpeg.Binary); err != nil {
		return ErrFFmpegNotFound
	}
	return TempDirWritable(cfg.Workspace.TempDir)
}

// FFprobeAvailable reports whether the configured ffprobe binary resolves.
func FFprobeAvailable(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpeg.FFprobeBinary); err != nil {
		return errFFprobeUnavailable
	}
	return nil
}

// TempDirWritable verifies dir is an existing directory the current user
// may create files in.
func TempDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTempDirUnwritable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrTempDirUnwritable, dir)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTempDirUnwritable, dir, err)
	}
	return nil
}

// --- internal helpers ---

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// hasDemuxer scans `ffmpeg -demuxers` output, whose rows look like
// " D  concat          Virtual concatenation script".
func hasDemuxer(out, name string) bool {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.Contains(fields[0], "D") {
			continue
		}
		for _, n := range strings.Split(fields[1], ",") {
			if n == name {
				return true
			}
		}
	}
	return false
}
