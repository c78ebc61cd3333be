package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gerunddev/markdown2html/internal/build"
	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/state"
	"github.com/gerunddev/markdown2html/internal/tui"
)

func newBuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Convert every markdown file in the configured source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			log, cleanup := openLogger(cmd, cfg)
			defer cleanup()
			log.ConfigLoaded(cfg.SourceDir, cfg.OutputDir, cfg.Interval)

			st, err := state.Load(config.StateFilePath())
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			b := build.NewBuilder(cfg, st)
			b.SetLogger(log)
			b.SetForce(force)

			result, buildErr := runBuild(cmd.Context(), b, cfg.SourceDir)

			if err := st.Save(config.StateFilePath()); err != nil {
				log.StateError("save", err)
				return fmt.Errorf("saving state: %w", err)
			}

			if buildErr != nil {
				return buildErr
			}
			if len(result.Errors) > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Convert all files, even unchanged ones")
	return cmd
}

// runBuild runs the build behind a spinner when stdout is a terminal
func runBuild(ctx context.Context, b *build.Builder, sourceDir string) (*build.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		result, err := b.Build(ctx)
		fmt.Print(tui.Summary(result, err))
		return result, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.InitBuildModel(sourceDir))

	type outcome struct {
		result *build.Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := b.Build(ctx)
		done <- outcome{result, err}
		p.Send(tui.BuildMsg{Result: result, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress display: %w", err)
	}

	// The user may have quit early; stop the build and wait for it
	cancel()
	out := <-done
	return out.result, out.err
}
