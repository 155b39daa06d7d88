package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/clipcat/internal/check"
	"github.com/backmassage/clipcat/internal/clip"
	"github.com/backmassage/clipcat/internal/config"
	"github.com/backmassage/clipcat/internal/display"
	"github.com/backmassage/clipcat/internal/logging"
	"github.com/backmassage/clipcat/internal/pipeline"
	"github.com/backmassage/clipcat/internal/term"
)

func newRootCommand() *cobra.Command {
	flags := &config.Flags{}

	rootCmd := &cobra.Command{
		Use:   "clipcat [flags] <output>",
		Short: "Trim segments out of media files and join them",
		Long: `clipcat copies segments out of one or more media files with ffmpeg
(stream copy, no re-encode) and concatenates them into <output>.

Each --input-clip is FILE[@START-END[,START-END...]]. Timecodes are
[H:]MM:SS[.frac] (e.g. 01:30, 1:02:03.5); either bound of a range may be
empty. A backslash escapes the next character in FILE, so a file
named "a@b.mp4" is written a\@b.mp4.`,
		Example: `  clipcat -i talk.mp4@00:10-01:00,05:00-06:30 -i outro.mp4 out.mp4
  clipcat -n -i "a\@b.mkv@-00:30" short.mkv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(flags.ClipSpecs) == 0 {
				return cmd.Help()
			}
			return runClips(cmd, flags, args)
		},
	}

	flags.RegisterGlobal(rootCmd.PersistentFlags())
	flags.RegisterRun(rootCmd.Flags())

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig builds the effective config: defaults, then the config file,
// then the flags the user passed.
func loadConfig(cmd *cobra.Command, flags *config.Flags) (*config.Config, error) {
	cfg, _, _, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	if err := flags.Apply(cfg, cmd.Flags()); err != nil {
		return nil, withCode(exitUsage, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, withCode(exitUsage, err)
	}
	return cfg, nil
}

// newLogger opens the logger and points it at the command's streams.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	log.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return log, nil
}

// parseClips parses every spec, stopping at the first invalid one.
func parseClips(specs []string) ([]clip.Clip, error) {
	clips := make([]clip.Clip, 0, len(specs))
	for i, spec := range specs {
		c, err := clip.Parse(spec)
		if err != nil {
			return nil, withCode(exitUsage, fmt.Errorf("input clip %d (%q): %w", i+1, spec, err))
		}
		clips = append(clips, c)
	}
	return clips, nil
}

func runClips(cmd *cobra.Command, flags *config.Flags, args []string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.OutputPath = args[0]
	}
	if err := cfg.ValidateRun(); err != nil {
		return withCode(exitUsage, err)
	}

	clips, err := parseClips(cfg.ClipSpecs)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(f) {
		display.PrintBanner(f)
	}
	log.Info("=== clipcat v%s ===", version)
	log.Info("Out: %s", cfg.OutputPath)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	} else if err := check.CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = pipeline.Run(ctx, cfg, log, clips)
	return err
}
