package diff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/markdown2html/internal/document"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestPlainUpToDate(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.md")
	out := filepath.Join(tmpDir, "a.html")
	writeFile(t, src, "# A\n- x\n")

	if err := document.ConvertFile(src, out, document.Options{}); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	unified, err := Plain(src, out, document.Options{})
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	if unified != "" {
		t.Errorf("expected empty diff, got:\n%s", unified)
	}
}

func TestPlainStale(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.md")
	out := filepath.Join(tmpDir, "a.html")
	writeFile(t, src, "# New title\n")
	writeFile(t, out, "<h1>Old title</h1>")

	unified, err := Plain(src, out, document.Options{})
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	if !strings.Contains(unified, "-<h1>Old title</h1>") {
		t.Errorf("diff should remove the old heading:\n%s", unified)
	}
	if !strings.Contains(unified, "+<h1>New title</h1>") {
		t.Errorf("diff should add the new heading:\n%s", unified)
	}
}

func TestPlainMissingOutput(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.md")
	writeFile(t, src, "text\n")

	unified, err := Plain(src, filepath.Join(tmpDir, "a.html"), document.Options{})
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	if !strings.Contains(unified, "+<p>text") {
		t.Errorf("missing output should diff as all additions:\n%s", unified)
	}
}

func TestPlainMissingSource(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Plain(filepath.Join(tmpDir, "a.md"), filepath.Join(tmpDir, "a.html"), document.Options{})
	if !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Plain() error = %v, want ErrNotFound", err)
	}
}

func TestGenerateUpToDate(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.md")
	out := filepath.Join(tmpDir, "a.html")
	writeFile(t, src, "plain\n")

	if err := document.ConvertFile(src, out, document.Options{}); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	rendered, err := Generate(src, out, document.Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rendered != "" {
		t.Errorf("expected empty rendering, got %q", rendered)
	}
}
