package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/clipcat/internal/check"
	"github.com/backmassage/clipcat/internal/config"
)

func newCheckCommand(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that ffmpeg, ffprobe, and the temp dir are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			if !check.RunCheck(cfg, log) {
				return withCode(exitUsage, errors.New("system check failed"))
			}
			return nil
		},
	}
}
