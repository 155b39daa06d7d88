package config

// This file binds command-line flags. Values land in a Flags struct first
// and are copied into Config by Apply after the config file has been read,
// so a flag only overrides the file when the user actually passed it.

import (
	"github.com/spf13/pflag"
)

// Flags holds raw command-line values.
type Flags struct {
	ConfigPath string
	ClipSpecs  []string

	dryRun   bool
	force    bool
	keepTemp bool
	strict   bool
	noProbe  bool
	verbose  bool
	tempDir  string
	logFile  string
	ffmpeg   string
	color    bool
	noColor  bool

	fs *pflag.FlagSet
}

// RegisterGlobal binds flags shared by every subcommand: --config,
// --verbose, --color/--no-color, --log, --ffmpeg.
func (f *Flags) RegisterGlobal(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Configuration file path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output (debug lines, live ffmpeg log)")
	fs.BoolVar(&f.color, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
	fs.StringVar(&f.ffmpeg, "ffmpeg", "", "ffmpeg binary (default from config, else \"ffmpeg\")")
}

// RegisterRun binds the flags of the trim-and-concatenate command.
func (f *Flags) RegisterRun(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.ClipSpecs, "input-clip", "i", nil, "Clip spec: FILE[@START-END[, START-END...]] (repeatable, in order)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "Print the ffmpeg commands without running them")
	fs.BoolVarP(&f.force, "force", "f", false, "Overwrite an existing output file")
	fs.BoolVarP(&f.keepTemp, "keep-temp", "k", false, "Keep the temporary workspace after the run")
	fs.BoolVar(&f.strict, "strict", false, "Disable automatic ffmpeg retry fallbacks")
	fs.BoolVar(&f.noProbe, "no-probe", false, "Do not probe sources with ffprobe")
	fs.StringVar(&f.tempDir, "temp-dir", "", "Parent directory for the temporary workspace")
}

// Apply copies the flags the user passed into cfg. fs is the command's
// merged flag set, which sees both global and command flags.
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		fs = f.fs
	}
	changed := func(name string) bool {
		return fs != nil && fs.Lookup(name) != nil && fs.Changed(name)
	}

	cfg.ClipSpecs = append([]string(nil), f.ClipSpecs...)

	if changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if changed("force") {
		cfg.Force = f.force
	}
	if changed("keep-temp") {
		cfg.Workspace.KeepTemp = f.keepTemp
	}
	if changed("strict") {
		cfg.FFmpeg.Strict = f.strict
	}
	if changed("no-probe") && f.noProbe {
		cfg.FFmpeg.Probe = false
	}
	if changed("verbose") {
		cfg.Logging.Verbose = f.verbose
	}
	if changed("ffmpeg") {
		cfg.FFmpeg.Binary = f.ffmpeg
	}
	if changed("temp-dir") {
		dir, err := expandPath(f.tempDir)
		if err != nil {
			return err
		}
		cfg.Workspace.TempDir = NormalizeDirArg(dir)
	}
	if changed("log") {
		path, err := expandPath(f.logFile)
		if err != nil {
			return err
		}
		cfg.Logging.File = path
	}
	if f.noColor {
		cfg.Logging.Color = ColorNever
	} else if f.color {
		cfg.Logging.Color = ColorAlways
	}
	return nil
}
