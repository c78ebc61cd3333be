package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	s := NewState()

	if s.Files == nil {
		t.Error("Files map should be initialized")
	}
	if len(s.Files) != 0 {
		t.Error("Files map should be empty")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "nested", "state.json")

	state := NewState()
	state.Files["notes/test.md"] = &FileState{
		MTime:   123456789,
		Hash:    "sha256:abc123",
		Output:  "html/test.html",
		Options: "standalone=true,front_matter=false",
	}

	if err := state.Save(statePath); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	if len(loaded.Files) != 1 {
		t.Errorf("Expected 1 file, got %d", len(loaded.Files))
	}

	fileState := loaded.Files["notes/test.md"]
	if fileState == nil {
		t.Fatal("File state not found")
	}
	if fileState.MTime != 123456789 {
		t.Errorf("MTime mismatch: got %d, want 123456789", fileState.MTime)
	}
	if fileState.Hash != "sha256:abc123" {
		t.Errorf("Hash mismatch: got %s, want sha256:abc123", fileState.Hash)
	}
	if fileState.Output != "html/test.html" {
		t.Errorf("Output mismatch: got %s, want html/test.html", fileState.Output)
	}
	if fileState.Options != "standalone=true,front_matter=false" {
		t.Errorf("Options mismatch: got %s, want standalone=true,front_matter=false", fileState.Options)
	}
}

func TestLoadWithoutOptions(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	legacy := `{"files":{"a.md":{"mtime":1,"hash":"sha256:x","output":"a.html"}}}`
	if err := os.WriteFile(statePath, []byte(legacy), 0644); err != nil {
		t.Fatalf("Failed to write state: %v", err)
	}

	loaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}
	if got := loaded.Files["a.md"].Options; got != "" {
		t.Errorf("Options = %q, want empty for records written without options", got)
	}
}

func TestLoadNonExistent(t *testing.T) {
	state, err := Load(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("Load should not error on missing file: %v", err)
	}
	if state == nil {
		t.Fatal("State should not be nil")
	}
	if len(state.Files) != 0 {
		t.Error("State should be empty")
	}
}

func TestLoadCorrupt(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(statePath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write state: %v", err)
	}

	if _, err := Load(statePath); err == nil {
		t.Error("Load should fail on corrupt state")
	}
}

func TestComputeHash(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.md")
	if err := os.WriteFile(testFile, []byte("Hello, World!"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := ComputeHash(testFile)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if hash[:7] != "sha256:" {
		t.Errorf("Hash should start with 'sha256:', got: %s", hash)
	}

	hash2, err := ComputeHash(testFile)
	if err != nil {
		t.Fatalf("ComputeHash failed on second call: %v", err)
	}
	if hash != hash2 {
		t.Error("Hash should be deterministic")
	}
}

func TestHasChanged(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.md")
	if err := os.WriteFile(testFile, []byte("# One"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	state := NewState()

	changed, err := state.HasChanged(testFile)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("Untracked file should be reported as changed")
	}

	if err := state.Update(testFile, "test.html", "standalone=false,front_matter=false"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	changed, err = state.HasChanged(testFile)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("File should be unchanged right after Update")
	}
	if got := state.Files[testFile].Options; got != "standalone=false,front_matter=false" {
		t.Errorf("Update stored options %q", got)
	}

	// Touch with a new mtime but identical content
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(testFile, future, future); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	changed, err = state.HasChanged(testFile)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("Same content with new mtime should not count as changed")
	}

	if err := os.WriteFile(testFile, []byte("# Two"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}
	if err := os.Chtimes(testFile, future.Add(time.Hour), future.Add(time.Hour)); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	changed, err = state.HasChanged(testFile)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("Modified content should count as changed")
	}
}

func TestPrune(t *testing.T) {
	tmpDir := t.TempDir()
	kept := filepath.Join(tmpDir, "kept.md")
	if err := os.WriteFile(kept, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	state := NewState()
	if err := state.Update(kept, "kept.html", ""); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	gone := filepath.Join(tmpDir, "gone.md")
	state.Files[gone] = &FileState{Hash: "sha256:x"}

	removed := state.Prune()
	if len(removed) != 1 || removed[0] != gone {
		t.Errorf("Prune() = %v, want [%s]", removed, gone)
	}
	if _, ok := state.Files[kept]; !ok {
		t.Error("existing file should survive Prune")
	}

	state.Forget(kept)
	if len(state.Files) != 0 {
		t.Errorf("Forget should remove the entry, %d left", len(state.Files))
	}
}

func TestGetMTime(t *testing.T) {
	state := NewState()
	if !state.GetMTime("missing.md").IsZero() {
		t.Error("GetMTime of untracked file should be zero")
	}

	state.Files["a.md"] = &FileState{MTime: 1700000000}
	if got := state.GetMTime("a.md").Unix(); got != 1700000000 {
		t.Errorf("GetMTime() = %d, want 1700000000", got)
	}
}
