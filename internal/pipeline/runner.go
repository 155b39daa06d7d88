package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/backmassage/clipcat/internal/check"
	"github.com/backmassage/clipcat/internal/clip"
	"github.com/backmassage/clipcat/internal/config"
	"github.com/backmassage/clipcat/internal/display"
	"github.com/backmassage/clipcat/internal/ffmpeg"
	"github.com/backmassage/clipcat/internal/logging"
	"github.com/backmassage/clipcat/internal/naming"
	"github.com/backmassage/clipcat/internal/planner"
	"github.com/backmassage/clipcat/internal/probe"
)

// Replaced in tests.
var (
	execute     = ffmpeg.Execute
	probeSource = probe.Probe
)

// stderrLogLines caps how much ffmpeg output is repeated after a failure.
const stderrLogLines = 20

// Run trims every segment of clips into a temporary workspace and joins
// them into cfg.OutputPath. Segments are processed in order and the run
// stops at the first failure. The returned error, if any, carries a
// [Class] readable with [ErrorClass].
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, clips []clip.Clip) (RunStats, error) {
	start := time.Now()
	stats := RunStats{RunID: uuid.NewString(), Clips: len(clips)}

	sources, err := collectSources(clips)
	if err != nil {
		return stats, inputErr("%w", err)
	}
	for _, s := range sources {
		stats.TotalInputBytes += s.Size
		if !IsMediaFile(s.Path) {
			log.Warn("%s does not look like a media file", s.Path)
		}
	}

	output, existed, err := checkOutput(cfg, sources)
	if err != nil {
		return stats, err
	}

	if cfg.DryRun {
		return dryRun(cfg, log, clips, stats)
	}

	// --- Lock the output ---
	lock := flock.New(naming.LockPath(output))
	locked, err := lock.TryLock()
	if err != nil {
		return stats, resourceErr("lock %s: %w", output, err)
	}
	if !locked {
		return stats, resourceErr("%w: %s", ErrLocked, lock.Path())
	}
	// The lock file is never removed: unlinking it would let two runs hold
	// locks on different inodes for the same output.
	defer func() { _ = lock.Unlock() }()

	// --- Workspace ---
	workDir, err := os.MkdirTemp(cfg.Workspace.TempDir, "clipcat-"+stats.RunID+"-*")
	if err != nil {
		return stats, resourceErr("create temporary directory: %w", err)
	}
	stats.WorkDir = workDir
	log.Info("Putting temporary files in %s", workDir)
	defer cleanupWorkspace(cfg, log, workDir)

	plan, err := planner.BuildPlan(cfg, clips, workDir)
	if err != nil {
		return stats, inputErr("%w", err)
	}
	stats.Segments = len(plan.Jobs)

	probeSources(ctx, cfg, log, plan)

	// --- Trim ---
	if err := trimAll(ctx, cfg, log, plan, &stats); err != nil {
		return stats, err
	}

	// --- Concatenate ---
	log.Info("Concatenating %d segments into %s", stats.Trimmed, cfg.OutputPath)
	// A forced overwrite keeps the old file in place until ffmpeg replaces it.
	partial := output
	if existed {
		partial = ""
	}
	rs := ffmpeg.NewRetryState(plan, cfg.FFmpeg.Strict)
	err = runWithRetry(ctx, log, partial, rs, func(rs *ffmpeg.RetryState) []string {
		return ffmpeg.BuildConcat(cfg, plan.ManifestPath, cfg.OutputPath, rs)
	})
	if err != nil {
		if partial != "" {
			_ = os.Remove(partial)
		}
		if ctx.Err() != nil {
			return stats, toolErr("interrupted: %w", ctx.Err())
		}
		return stats, toolErr("%w: %w", ErrConcatFailed, err)
	}

	if fi, err := os.Stat(output); err == nil {
		stats.OutputBytes = fi.Size()
	}
	stats.Elapsed = time.Since(start)
	logSummary(log, &stats)
	return stats, nil
}

// checkOutput resolves the output path and refuses to overwrite an
// existing file (unless forced) or one of the sources. existed reports
// whether a forced run will replace a file.
func checkOutput(cfg *config.Config, sources []source) (output string, existed bool, err error) {
	output, err = filepath.Abs(cfg.OutputPath)
	if err != nil {
		return "", false, inputErr("output path: %w", err)
	}
	output = filepath.Clean(output)

	abs := make([]string, len(sources))
	for i, s := range sources {
		abs[i] = s.Abs
	}
	if err := cfg.ValidateOutput(output, abs); err != nil {
		return "", false, inputErr("%w", err)
	}

	if fi, err := os.Stat(output); err == nil {
		if fi.IsDir() {
			return "", false, inputErr("output %s is a directory", cfg.OutputPath)
		}
		if !cfg.Force {
			return "", false, inputErr("%w: %s", ErrOutputExists, cfg.OutputPath)
		}
		existed = true
	}
	return output, existed, nil
}

// trimAll runs one trim per job in order and appends each finished segment
// to the manifest. It stops at the first failure.
func trimAll(ctx context.Context, cfg *config.Config, log *logging.Logger, plan *planner.Plan, stats *RunStats) error {
	manifest, err := os.Create(plan.ManifestPath)
	if err != nil {
		return resourceErr("create concat list: %w", err)
	}
	defer manifest.Close()

	for _, job := range plan.Jobs {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return toolErr("interrupted: %w", ctx.Err())
		}

		log.Info("Copying segment %s from %s", job.Label(), job.Source)
		rs := ffmpeg.NewRetryState(plan, cfg.FFmpeg.Strict)
		err := runWithRetry(ctx, log, job.TempPath, rs, func(rs *ffmpeg.RetryState) []string {
			return ffmpeg.BuildTrim(cfg, job, rs)
		})
		if err != nil {
			if ctx.Err() != nil {
				return toolErr("interrupted: %w", ctx.Err())
			}
			log.Error("%v, stopping", ErrTrimFailed)
			return toolErr("%w: clip %d segment %s: %w", ErrTrimFailed, job.ClipIndex+1, job.Label(), err)
		}

		if err := ffmpeg.WriteManifest(manifest, []string{job.TempPath}); err != nil {
			return resourceErr("%w", err)
		}
		stats.Trimmed++
	}

	if err := manifest.Close(); err != nil {
		return resourceErr("close concat list: %w", err)
	}
	return nil
}

// runWithRetry executes the command built by build, classifying stderr on
// failure and applying one fix per retry. partial, when set, is removed
// before each retry.
func runWithRetry(
	ctx context.Context,
	log *logging.Logger,
	partial string,
	rs *ffmpeg.RetryState,
	build func(*ffmpeg.RetryState) []string,
) error {
	for {
		args := build(rs)
		log.Command("%s", ffmpeg.FormatCommand(args))

		err := execute(ctx, args, log.Verbose())
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		var xe *ffmpeg.ExitError
		if !errors.As(err, &xe) {
			return err
		}

		action := rs.Advance(xe.Stderr)
		if action == ffmpeg.RetryNone {
			if rs.Strict {
				log.Error("ffmpeg failed (strict mode, no retry)")
			} else {
				log.Error("ffmpeg failed (no applicable retry)")
			}
			logStderr(log, xe.Stderr)
			return err
		}

		log.Warn("Retry %d: %s", rs.Attempt, action)
		if partial != "" {
			_ = os.Remove(partial)
		}
	}
}

// probeSources logs each source's container summary and warns about
// segment bounds past the source duration. Probing is best effort.
func probeSources(ctx context.Context, cfg *config.Config, log *logging.Logger, plan *planner.Plan) {
	if !cfg.FFmpeg.Probe {
		return
	}
	if err := check.FFprobeAvailable(cfg); err != nil {
		log.Debug("Skipping probe: %v", err)
		return
	}

	durations := make(map[string]float64)
	for _, src := range plan.Sources() {
		pr, err := probeSource(ctx, cfg.FFmpeg.FFprobeBinary, src)
		if err != nil {
			log.Warn("Cannot probe %s: %v", src, err)
			continue
		}
		if !pr.HasMedia() {
			log.Warn("%s has no audio or video streams", src)
		}
		durations[src] = pr.Format.Duration
		log.Debug("%s: %s, %s", src, pr.Summary(), display.FormatSeconds(pr.Format.Duration))
	}

	for _, job := range plan.Jobs {
		if note := planner.BoundsNote(job, durations[job.Source]); note != "" {
			log.Warn("%s segment %s: %s", job.Source, job.Label(), note)
		}
	}
}

// dryRun logs the plan and every command without touching the filesystem.
func dryRun(cfg *config.Config, log *logging.Logger, clips []clip.Clip, stats RunStats) (RunStats, error) {
	workDir := filepath.Join(cfg.Workspace.TempDir, "clipcat-"+stats.RunID)
	plan, err := planner.BuildPlan(cfg, clips, workDir)
	if err != nil {
		return stats, inputErr("%w", err)
	}
	stats.WorkDir = workDir
	stats.Segments = len(plan.Jobs)

	log.Info("[DRY] %d clips, %d segments -> %s", len(clips), len(plan.Jobs), cfg.OutputPath)
	log.Block(display.RenderTable(
		[]string{"#", "Source", "Segment", "Start", "End", "Temp file"},
		plan.Rows(),
		[]display.Alignment{display.AlignRight},
	))

	rs := ffmpeg.NewRetryState(plan, cfg.FFmpeg.Strict)
	for _, job := range plan.Jobs {
		log.Command("%s", ffmpeg.FormatCommand(ffmpeg.BuildTrim(cfg, job, rs)))
	}
	log.Command("%s", ffmpeg.FormatCommand(ffmpeg.BuildConcat(cfg, plan.ManifestPath, cfg.OutputPath, rs)))
	log.Success("[DRY] Would write %s", cfg.OutputPath)
	return stats, nil
}

func cleanupWorkspace(cfg *config.Config, log *logging.Logger, workDir string) {
	if cfg.Workspace.KeepTemp {
		log.Info("Kept temporary files in %s", workDir)
		return
	}
	if err := os.RemoveAll(workDir); err != nil {
		log.Warn("Cannot remove temporary directory %s: %v", workDir, err)
	}
}

func logStderr(log *logging.Logger, stderr string) {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(stderr, "\n")
	start := 0
	if len(lines) > stderrLogLines {
		start = len(lines) - stderrLogLines
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Success("Wrote %s in %s (%d segments from %d clips)",
		display.FormatBytes(stats.OutputBytes),
		formatElapsed(stats.Elapsed),
		stats.Trimmed, stats.Clips)
	if stats.TotalInputBytes > 0 {
		log.Info("Output is %d%% of the source size (%s)",
			stats.KeptPercent(), display.FormatBytes(stats.TotalInputBytes))
	}
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
