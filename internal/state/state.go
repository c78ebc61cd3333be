package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileState is what the last successful conversion of one source left
// behind. Options is the document.Options key the output was rendered with.
type FileState struct {
	MTime   int64  `json:"mtime"`
	Hash    string `json:"hash"`
	Output  string `json:"output"`
	Options string `json:"options,omitempty"`
}

// State maps source paths to their conversion records
type State struct {
	Files map[string]*FileState `json:"files"`
}

// NewState returns a state that tracks no sources
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load decodes the JSON state at path. A missing file is not an error:
// the first build simply starts from an empty state.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save persists s as indented JSON, creating the parent directory first
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash returns the content digest of path as "sha256:<hex>"
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged reports whether the source at path differs from what was
// last converted. An untouched mtime is trusted; otherwise the content
// digest decides, so a touch without edits does not count.
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	fileState, exists := s.Files[path]
	if !exists {
		return true, nil
	}

	if info.ModTime().Unix() == fileState.MTime {
		return false, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records path as converted into output with the given options key
func (s *State) Update(path, output, options string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime:   info.ModTime().Unix(),
		Hash:    hash,
		Output:  output,
		Options: options,
	}

	return nil
}

// Forget drops the record for path
func (s *State) Forget(path string) {
	delete(s.Files, path)
}

// Prune drops records whose source file no longer exists and returns
// the removed paths
func (s *State) Prune() []string {
	var removed []string
	for path := range s.Files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			delete(s.Files, path)
			removed = append(removed, path)
		}
	}
	return removed
}

// GetMTime is the source mtime seen at the last conversion, or the zero
// time for an untracked path
func (s *State) GetMTime(path string) time.Time {
	if fileState, exists := s.Files[path]; exists {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}
