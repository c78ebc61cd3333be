package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/markdown2html/internal/build"
	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/state"
	"github.com/gerunddev/markdown2html/internal/tui"
	"github.com/gerunddev/markdown2html/internal/watch"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tracked files, pending conversions and the watcher state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			st, err := state.Load(config.StateFilePath())
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			pending, err := build.NewBuilder(cfg, st).Pending()
			if err != nil {
				return err
			}

			running, pid, since := watch.IsRunning()

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStatus(&tui.StatusData{
				SourceDir:      cfg.SourceDir,
				OutputDir:      cfg.OutputDir,
				Interval:       cfg.Interval,
				State:          st,
				Pending:        pending,
				WatcherRunning: running,
				WatcherPID:     pid,
				WatcherSince:   since,
			}))
			return nil
		},
	}
}
