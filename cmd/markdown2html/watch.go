package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gerunddev/markdown2html/internal/build"
	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/state"
	"github.com/gerunddev/markdown2html/internal/styles"
	"github.com/gerunddev/markdown2html/internal/tui"
	"github.com/gerunddev/markdown2html/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		stop     bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the source directory periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stop {
				return stopWatcher(cmd)
			}

			if running, pid, _ := watch.IsRunning(); running {
				return fmt.Errorf("watcher already running with PID %d", pid)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if interval > 0 {
				cfg.Interval = interval
			}

			log, cleanup := openLogger(cmd, cfg)
			defer cleanup()

			st, err := state.Load(config.StateFilePath())
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			if err := watch.WritePID(); err != nil {
				return err
			}
			defer func() {
				if err := watch.RemovePID(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to remove PID file on shutdown: %v\n", err)
				}
			}()

			b := build.NewBuilder(cfg, st)
			b.SetLogger(log)

			w := watch.New(b, st, config.StateFilePath(), cfg.Interval)
			w.SetLogger(log)
			w.OnBuild(func(result *build.Result, err error) {
				if err != nil || len(result.Converted) > 0 || len(result.Errors) > 0 {
					fmt.Fprint(cmd.OutOrStdout(), tui.Summary(result, err))
				}
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), styles.TitleStyle.Render("Watching ")+
				styles.PathStyle.Render(cfg.SourceDir)+
				styles.DimStyle.Render(fmt.Sprintf(" every %v (Ctrl+C to stop)", cfg.Interval)))

			if err := w.Run(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ Watcher stopped"))
			log.Info("watch shutdown complete")
			return nil
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Rebuild interval (defaults to the configured interval)")
	cmd.Flags().BoolVar(&stop, "stop", false, "Stop a running watcher")
	return cmd
}

func stopWatcher(cmd *cobra.Command) error {
	running, pid, _ := watch.IsRunning()
	if !running {
		fmt.Fprintln(cmd.OutOrStdout(), styles.DimStyle.Render("Watcher is not running"))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stopping watcher (PID %d)...\n", pid)
	if err := watch.Stop(); err != nil {
		return err
	}

	for i := 0; i < 10; i++ {
		time.Sleep(500 * time.Millisecond)
		if running, _, _ = watch.IsRunning(); !running {
			break
		}
	}
	if running {
		return fmt.Errorf("watcher did not stop gracefully")
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ Watcher stopped"))
	return nil
}
