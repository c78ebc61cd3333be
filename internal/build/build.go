package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/markdown2html/internal/config"
	"github.com/gerunddev/markdown2html/internal/document"
	"github.com/gerunddev/markdown2html/internal/logger"
	"github.com/gerunddev/markdown2html/internal/state"
)

// SourceExt is the extension of files picked up by a build
const SourceExt = ".md"

// Builder converts every markdown file under the source directory
type Builder struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger
	force  bool
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config, st *state.State) *Builder {
	return &Builder{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger used for build events
func (b *Builder) SetLogger(l *logger.Logger) {
	b.log = l
}

// SetForce makes the next builds convert every file, changed or not
func (b *Builder) SetForce(force bool) {
	b.force = force
}

// Result represents the result of a build run
type Result struct {
	RunID     string
	Converted []string
	Skipped   int
	Pruned    int
	Errors    []error
	StartTime time.Time
	EndTime   time.Time
}

// Build performs a single pass over the source directory. Failures on
// individual files are collected in the result; the returned error is
// reserved for problems that stop the whole run.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	b.log.BuildStarted(result.RunID, b.config.SourceDir, b.config.OutputDir)

	files, err := ScanDirectory(b.config.SourceDir, SourceExt, b.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", b.config.SourceDir, err)
	}

	opts := b.options()

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			result.EndTime = time.Now()
			return result, err
		}

		dst, err := OutputPath(b.config.SourceDir, b.config.OutputDir, src)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		if !b.force {
			stale, reason, err := b.needsBuild(src, dst)
			if err != nil {
				b.log.StateError("check "+src, err)
				result.Errors = append(result.Errors, err)
				continue
			}
			if !stale {
				b.log.Skipped(src, reason)
				result.Skipped++
				continue
			}
		}

		if err := document.ConvertFile(src, dst, opts); err != nil {
			b.log.ConversionError(src, dst, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", src, err))
			continue
		}
		if err := b.state.Update(src, dst, opts.Key()); err != nil {
			b.log.StateError("update "+src, err)
			result.Errors = append(result.Errors, err)
		}

		b.log.FileConverted(src, dst)
		result.Converted = append(result.Converted, src)
	}

	result.Pruned = len(b.state.Prune())

	result.EndTime = time.Now()
	b.log.BuildCompleted(result.RunID, len(result.Converted), result.Skipped, len(result.Errors), result.Duration())
	return result, nil
}

// Pending lists the sources the next build would convert
func (b *Builder) Pending() ([]string, error) {
	files, err := ScanDirectory(b.config.SourceDir, SourceExt, b.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", b.config.SourceDir, err)
	}

	var pending []string
	for _, src := range files {
		dst, err := OutputPath(b.config.SourceDir, b.config.OutputDir, src)
		if err != nil {
			return nil, err
		}
		stale, _, err := b.needsBuild(src, dst)
		if err != nil {
			return nil, err
		}
		if b.force || stale {
			pending = append(pending, src)
		}
	}
	return pending, nil
}

func (b *Builder) options() document.Options {
	return document.Options{
		FrontMatter: b.config.FrontMatter,
		Standalone:  b.config.Standalone,
	}
}

// needsBuild reports whether src must be converted again
func (b *Builder) needsBuild(src, dst string) (bool, string, error) {
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		return true, "output missing", nil
	}

	if fs, ok := b.state.Files[src]; ok {
		if fs.Output != dst {
			return true, "output moved", nil
		}
		if fs.Options != b.options().Key() {
			return true, "options changed", nil
		}
	}

	changed, err := b.state.HasChanged(src)
	if err != nil {
		return false, "", err
	}
	if !changed {
		return false, "unchanged", nil
	}
	return true, "changed", nil
}

// OutputPath maps a source file to its HTML destination, mirroring the
// layout of sourceDir under outputDir
func OutputPath(sourceDir, outputDir, src string) (string, error) {
	rel, err := filepath.Rel(sourceDir, src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", src, sourceDir)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(outputDir, rel), nil
}

// ScanDirectory scans a directory for files with given extension, leaving
// out those whose base name matches one of the exclude patterns
func ScanDirectory(dir string, ext string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ext {
			return nil
		}

		excluded, err := matchesAny(filepath.Base(path), exclude)
		if err != nil {
			return err
		}
		if !excluded {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

func matchesAny(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Duration returns how long the build took
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// String returns a human-readable summary of the build result
func (r *Result) String() string {
	return fmt.Sprintf(
		"Build complete: %d files converted, %d unchanged, %d errors (took %v)",
		len(r.Converted),
		r.Skipped,
		len(r.Errors),
		r.Duration().Round(time.Millisecond),
	)
}
