package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/markdown2html/internal/build"
	"github.com/gerunddev/markdown2html/internal/styles"
)

// BuildMsg is sent when the build completes
type BuildMsg struct {
	Result *build.Result
	Err    error
}

// buildModel is the Bubble Tea model for the build progress display
type buildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *build.Result
	err      error
}

// InitBuildModel creates a new build progress model
func InitBuildModel(sourceDir string) buildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return buildModel{
		spinner: s,
		status:  "Converting " + sourceDir + "...",
	}
}

func (m buildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}
	return Summary(m.result, m.err)
}

// Summary renders a styled one-shot report of a build
func Summary(result *build.Result, err error) string {
	if err != nil {
		return styles.ErrorStyle.Render("✗ Build failed: "+err.Error()) + "\n"
	}

	took := styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", result.Duration().Round(time.Millisecond)))

	if len(result.Converted) == 0 && len(result.Errors) == 0 {
		return styles.SuccessStyle.Render("✓ Everything up to date") + "\n" + took + "\n"
	}

	msg := styles.SuccessStyle.Render(fmt.Sprintf("✓ Converted %d file(s)", len(result.Converted)))
	if result.Skipped > 0 {
		msg += ", " + styles.DimStyle.Render(fmt.Sprintf("%d unchanged", result.Skipped))
	}
	if len(result.Errors) > 0 {
		msg += ", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", len(result.Errors)))
		for _, e := range result.Errors {
			msg += "\n  " + styles.ErrorStyle.Render("✗ "+e.Error())
		}
	}
	return msg + "\n" + took + "\n"
}

// Done reports whether the model received the build result
func (m buildModel) Done() bool {
	return m.complete
}
