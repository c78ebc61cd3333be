package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/markdown2html/internal/document"
)

// Plain returns the unified diff between the HTML file at htmlPath (old)
// and a fresh conversion of srcPath (new). It is empty when the output is
// up to date.
func Plain(srcPath, htmlPath string, opts document.Options) (string, error) {
	fresh, err := document.Convert(srcPath, opts)
	if err != nil {
		return "", err
	}

	existing, err := os.ReadFile(htmlPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read html file: %w", err)
	}

	htmlName := filepath.Base(htmlPath)
	edits := myers.ComputeEdits(span.URIFromPath(htmlName), string(existing), fresh)
	if len(edits) == 0 {
		return "", nil
	}

	unified := gotextdiff.ToUnified(htmlName, htmlName+" (converted)", string(existing), edits)
	return fmt.Sprint(unified), nil
}

// Generate returns the diff rendered for the terminal. Rendering falls
// back to the fenced plain diff if glamour fails.
func Generate(srcPath, htmlPath string, opts document.Options) (string, error) {
	unified, err := Plain(srcPath, htmlPath, opts)
	if err != nil || unified == "" {
		return unified, err
	}

	// Wrap in diff code fence for syntax highlighting (+ in green, - in red)
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown, nil
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown, nil
	}

	return rendered, nil
}
