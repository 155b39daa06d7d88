package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/backmassage/clipcat/internal/config"
	"github.com/backmassage/clipcat/internal/planner"
)

// BuildTrim constructs the argument slice that copies one segment of a
// source into job.TempPath. Unset bounds are omitted so the segment runs
// from the beginning or to the end of the source.
func BuildTrim(cfg *config.Config, job planner.SegmentJob, rs *RetryState) []string {
	args := preamble(cfg, rs)
	args = append(args, "-i", job.Source)

	if job.Start.IsSet() {
		args = append(args, "-ss", job.Start.String())
	}
	if job.End.IsSet() {
		args = append(args, "-to", job.End.String())
	}

	args = append(args, "-c", "copy")
	args = appendFixes(args, rs)
	return append(args, "-y", job.TempPath)
}

// BuildConcat constructs the argument slice that joins the files listed in
// manifest into output with the concat demuxer. Without cfg.Force, ffmpeg
// is told never to overwrite (-n).
func BuildConcat(cfg *config.Config, manifest, output string, rs *RetryState) []string {
	args := preamble(cfg, rs)
	args = append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
	)
	args = appendFixes(args, rs)

	if cfg.Force {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	return append(args, output)
}

// preamble returns the binary, global flags, and pre-input fixes shared by
// every invocation.
func preamble(cfg *config.Config, rs *RetryState) []string {
	args := make([]string, 0, 24)
	args = append(args, cfg.FFmpeg.Binary, "-hide_banner", "-nostdin",
		"-loglevel", cfg.FFmpegLogLevel())

	// Input option: must precede -i.
	if rs.TimestampFix {
		args = append(args, "-fflags", "+genpts")
	}
	return args
}

func appendFixes(args []string, rs *RetryState) []string {
	if rs.MuxQueueSize > 0 {
		args = append(args, "-max_muxing_queue_size", strconv.Itoa(rs.MuxQueueSize))
	}
	if rs.TimestampFix {
		args = append(args, "-avoid_negative_ts", "make_zero")
	}
	return args
}

// FormatCommand renders args as a single line for logging. Arguments that
// contain whitespace, quotes, or shell metacharacters are double-quoted.
func FormatCommand(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

func quoteArg(a string) string {
	if a == "" {
		return `""`
	}
	if strings.ContainsAny(a, " \t\n\"'\\$`!*?;&|<>()[]{}#~") {
		return strconv.Quote(a)
	}
	return a
}
