// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command cmsctl is the operator CLI for readverse. It talks to the same
// backends as the API server, selected by the same environment variables.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/constants"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session carries what every subcommand needs after the root pre-run.
type session struct {
	cfg *config.Config
	log *slog.Logger
}

func NewRootCommand() *cobra.Command {
	var verbose bool
	current := &session{}

	rootCmd := &cobra.Command{
		Use:           "cmsctl",
		Short:         "Manage the readverse catalogue",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose || cfg.Debug {
				level = slog.LevelDebug
			}
			handler := slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})

			current.cfg = cfg
			current.log = slog.New(handler).With(slog.String("app", "cmsctl"))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend activity to stderr")

	rootCmd.AddCommand(NewGenreCommand(current))
	rootCmd.AddCommand(NewContentCommand(current))
	rootCmd.AddCommand(NewMigrateCommand(current))

	return rootCmd
}
