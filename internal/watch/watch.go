package watch

import (
	"context"
	"time"

	"github.com/gerunddev/markdown2html/internal/build"
	"github.com/gerunddev/markdown2html/internal/logger"
	"github.com/gerunddev/markdown2html/internal/state"
)

// Watcher rebuilds the source tree on a fixed interval
type Watcher struct {
	builder   *build.Builder
	state     *state.State
	statePath string
	interval  time.Duration
	log       *logger.Logger
	onBuild   func(*build.Result, error)
}

// New creates a watcher. State is saved to statePath after every build.
func New(b *build.Builder, st *state.State, statePath string, interval time.Duration) *Watcher {
	return &Watcher{
		builder:   b,
		state:     st,
		statePath: statePath,
		interval:  interval,
		log:       logger.Discard(),
	}
}

// SetLogger sets the logger used for loop events
func (w *Watcher) SetLogger(l *logger.Logger) {
	w.log = l
}

// OnBuild registers a callback invoked after every build
func (w *Watcher) OnBuild(fn func(*build.Result, error)) {
	w.onBuild = fn
}

// Run builds once, then again every interval, until ctx is done.
// It returns nil on a clean shutdown.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watch started", "interval", w.interval)

	w.tick(ctx)

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)

		case <-ctx.Done():
			w.log.Info("watch loop stopping")
			if err := w.state.Save(w.statePath); err != nil {
				w.log.StateError("save on shutdown", err)
				return err
			}
			return nil
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	result, err := w.builder.Build(ctx)
	if err != nil && ctx.Err() == nil {
		w.log.Error("build failed", "error", err)
	}

	if err := w.state.Save(w.statePath); err != nil {
		w.log.StateError("save", err)
	}

	if w.onBuild != nil && ctx.Err() == nil {
		w.onBuild(result, err)
	}
}
