package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/markdown2html/internal/convert"
)

// ErrNotFound is returned when the source document does not exist
var ErrNotFound = errors.New("source document not found")

// Options controls how a document is converted
type Options struct {
	// FrontMatter strips a leading YAML block and uses it as metadata
	FrontMatter bool
	// Standalone wraps the output in a complete HTML page
	Standalone bool
}

// Key identifies the option set in build state, so outputs rendered with
// different options are recognised as stale
func (o Options) Key() string {
	return fmt.Sprintf("standalone=%t,front_matter=%t", o.Standalone, o.FrontMatter)
}

// ReadLines reads a markdown file and splits it into lines
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return convert.SplitLines(string(data)), nil
}

// Write writes html to path, creating parent directories as needed
func Write(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Convert reads src and returns the rendered HTML
func Convert(src string, opts Options) (string, error) {
	lines, err := ReadLines(src)
	if err != nil {
		return "", err
	}

	doc := Parse(lines, opts.FrontMatter)
	doc.Name = baseName(src)
	return Render(doc, opts.Standalone), nil
}

// ConvertFile converts the markdown file src into the HTML file dst
func ConvertFile(src, dst string, opts Options) error {
	html, err := Convert(src, opts)
	if err != nil {
		return err
	}
	return Write(dst, html)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
