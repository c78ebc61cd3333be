package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
)

// ErrNotRunning means no live watcher is recorded in the PID file
var ErrNotRunning = errors.New("watcher is not running")

// PIDFile locates watch.pid under the runtime dir. Tests swap it out.
var PIDFile = func() string {
	return filepath.Join(xdg.RuntimeDir, "markdown2html", "watch.pid")
}

// WritePID records this process as the active watcher
func WritePID() error {
	pidFile := PIDFile()

	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}

	content := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(pidFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// ReadPID returns the recorded watcher PID, or ErrNotRunning when
// nothing is recorded
func ReadPID() (int, error) {
	content, err := os.ReadFile(PIDFile())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}

	return pid, nil
}

// RemovePID deletes the PID file; an already missing file is fine
func RemovePID() error {
	if err := os.Remove(PIDFile()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning reports whether the recorded watcher is alive, with its PID
// and the time the PID file was written. A record pointing at a dead
// process is cleaned up.
func IsRunning() (bool, int, time.Time) {
	pid, err := ReadPID()
	if err != nil {
		return false, 0, time.Time{}
	}

	if !alive(pid) {
		if err := RemovePID(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove stale PID file: %v\n", err)
		}
		return false, 0, time.Time{}
	}

	var since time.Time
	if info, err := os.Stat(PIDFile()); err == nil {
		since = info.ModTime()
	}

	return true, pid, since
}

// alive sends signal 0: delivery fails only if pid is gone or not ours
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// Stop asks the running watcher to shut down with SIGTERM
func Stop() error {
	running, pid, _ := IsRunning()
	if !running {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM to %d: %w", pid, err)
	}

	return nil
}
