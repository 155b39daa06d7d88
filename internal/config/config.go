// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// defaultSegmentExt is used for temporary segment files when neither the
// config nor the output name supplies an extension.
const defaultSegmentExt = ".mp4"

// FFmpeg holds settings for the external media tools.
type FFmpeg struct {
	Binary        string `toml:"binary"`         // Default: "ffmpeg".
	FFprobeBinary string `toml:"ffprobe_binary"` // Default: "ffprobe".
	LogLevel      string `toml:"loglevel"`       // Default: "error". Raised to "info" by --verbose.
	Probe         bool   `toml:"probe"`          // Default: true. Probe sources before trimming.
	Strict        bool   `toml:"strict"`         // Disable retry fallbacks.
}

// Workspace holds settings for temporary segment files.
type Workspace struct {
	TempDir    string `toml:"temp_dir"`    // Default: os.TempDir().
	KeepTemp   bool   `toml:"keep_temp"`   // Keep the workspace after the run.
	SegmentExt string `toml:"segment_ext"` // Default: derived from the output name.
}

// Logging holds display and log-file settings.
type Logging struct {
	Color   ColorMode `toml:"color"`   // Default: "auto".
	File    string    `toml:"file"`    // Optional log file path (appended).
	Verbose bool      `toml:"verbose"` // Debug lines and live ffmpeg output.
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid with the config file by [Load], then with command-line flags by
// [Flags.Apply], before being passed (by pointer) to packages that need it.
type Config struct {
	FFmpeg    FFmpeg    `toml:"ffmpeg"`
	Workspace Workspace `toml:"workspace"`
	Logging   Logging   `toml:"logging"`

	// Run inputs (command line only).
	OutputPath string   `toml:"-"`
	ClipSpecs  []string `toml:"-"`
	DryRun     bool     `toml:"-"`
	Force      bool     `toml:"-"` // Overwrite an existing output file.
}

// DefaultConfig returns a Config with built-in defaults. Used as the base
// before the config file and CLI overrides are applied.
func DefaultConfig() Config {
	return Config{
		FFmpeg: FFmpeg{
			Binary:        "ffmpeg",
			FFprobeBinary: "ffprobe",
			LogLevel:      "error",
			Probe:         true,
		},
		Workspace: Workspace{
			TempDir: os.TempDir(),
		},
		Logging: Logging{
			Color: ColorAuto,
		},
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks settings that do not depend on the command being run.
func (c *Config) Validate() error {
	switch c.Logging.Color {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.Logging.Color)
	}

	if strings.TrimSpace(c.FFmpeg.Binary) == "" {
		return errors.New("ffmpeg binary must not be empty")
	}

	switch c.FFmpeg.LogLevel {
	case "quiet", "panic", "fatal", "error", "warning", "info", "verbose", "debug", "trace":
		// valid
	default:
		return fmt.Errorf("invalid ffmpeg loglevel %q", c.FFmpeg.LogLevel)
	}

	if ext := c.Workspace.SegmentExt; ext != "" {
		if strings.ContainsAny(ext, `/\`) || strings.TrimLeft(ext, ".") == "" {
			return fmt.Errorf("invalid segment extension %q (use e.g. 'mp4' or '.mkv')", ext)
		}
	}

	if c.Workspace.TempDir == "" {
		return errors.New("temp dir must not be empty")
	}
	return nil
}

// ValidateRun checks the inputs required to trim and concatenate: an output
// path and at least one clip spec.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New("need an output file name")
	}
	if len(c.ClipSpecs) == 0 {
		return errors.New("need at least one --input-clip")
	}
	return nil
}

// ValidateOutput ensures the output does not overwrite one of the sources,
// which ffmpeg would truncate before reading. Arguments must be absolute,
// cleaned paths.
func (c *Config) ValidateOutput(outputAbs string, sourcesAbs []string) error {
	for _, src := range sourcesAbs {
		if src == outputAbs {
			return fmt.Errorf("output %s is also an input clip", outputAbs)
		}
	}
	return nil
}

// SegmentExtension returns the extension (with leading dot) for temporary
// segment files: the configured value, else the output's extension, else
// ".mp4".
func (c *Config) SegmentExtension() string {
	if ext := c.Workspace.SegmentExt; ext != "" {
		return "." + strings.TrimLeft(ext, ".")
	}
	if ext := filepath.Ext(c.OutputPath); ext != "" && ext != "." {
		return ext
	}
	return defaultSegmentExt
}

// FFmpegLogLevel returns the -loglevel value for ffmpeg invocations.
func (c *Config) FFmpegLogLevel() string {
	if c.Logging.Verbose && c.FFmpeg.LogLevel == "error" {
		return "info"
	}
	return c.FFmpeg.LogLevel
}
