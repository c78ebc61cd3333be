package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gerunddev/markdown2html/internal/state"
	"github.com/gerunddev/markdown2html/internal/styles"
)

var tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Comment))

// StatusData holds everything shown by the status report
type StatusData struct {
	SourceDir      string
	OutputDir      string
	Interval       time.Duration
	State          *state.State
	Pending        []string
	WatcherRunning bool
	WatcherPID     int
	WatcherSince   time.Time
}

// RenderStatus renders the status report
func RenderStatus(data *StatusData) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("markdown2html status") + "\n\n")
	b.WriteString(label("Source") + styles.PathStyle.Render(data.SourceDir) + "\n")
	b.WriteString(label("Output") + styles.PathStyle.Render(data.OutputDir) + "\n")

	if data.WatcherRunning {
		since := ""
		if !data.WatcherSince.IsZero() {
			since = fmt.Sprintf(" since %s", data.WatcherSince.Format(time.DateTime))
		}
		b.WriteString(label("Watcher") + styles.SuccessStyle.Render(fmt.Sprintf("running (PID %d)%s", data.WatcherPID, since)) + "\n")
	} else {
		b.WriteString(label("Watcher") + styles.DimStyle.Render(fmt.Sprintf("stopped (interval %v)", data.Interval)) + "\n")
	}

	tracked := 0
	if data.State != nil {
		tracked = len(data.State.Files)
	}
	b.WriteString(label("Tracked") + styles.TextStyle.Render(fmt.Sprint(tracked)) + "\n")

	if len(data.Pending) == 0 {
		b.WriteString(label("Pending") + styles.SuccessStyle.Render("none") + "\n")
	} else {
		b.WriteString(label("Pending") + styles.WarningStyle.Render(fmt.Sprint(len(data.Pending))) + "\n")
		for _, src := range data.Pending {
			b.WriteString("  " + styles.WarningStyle.Render("• "+relative(data.SourceDir, src)) + "\n")
		}
	}

	if tracked > 0 {
		b.WriteString("\n" + fileTable(data) + "\n")
	}

	return b.String()
}

func fileTable(data *StatusData) string {
	paths := make([]string, 0, len(data.State.Files))
	for path := range data.State.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("SOURCE", "OUTPUT", "CONVERTED")

	for _, path := range paths {
		fs := data.State.Files[path]
		t.Row(
			relative(data.SourceDir, path),
			relative(data.OutputDir, fs.Output),
			time.Unix(fs.MTime, 0).Format(time.DateTime),
		)
	}

	return t.String()
}

func label(s string) string {
	return styles.DimStyle.Render(fmt.Sprintf("%-9s", s))
}

func relative(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
