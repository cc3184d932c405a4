package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/mousemover/internal/runner"
)

// refreshInterval is how often the running view re-reads the runner.
const refreshInterval = 250 * time.Millisecond

const maxInputLen = 8

// Model holds the current state of the UI, including user input and the
// runner driving the pointer.
type Model struct {
	State        state
	Selected     int
	Input        string
	Runner       *runner.Runner
	ErrorMessage string
	Duration     time.Duration
	ShowHelp     bool

	keys     KeyMap
	help     help.Model
	progress progress.Model
	version  string
}

// InitialModel returns the menu model for r. A nil r gets a runner with
// default options.
func InitialModel(r *runner.Runner) Model {
	if r == nil {
		r = runner.New(runner.Options{})
	}
	return Model{
		State:    stateMenu,
		Runner:   r,
		keys:     DefaultKeys(),
		help:     NewHelpModel(),
		progress: newProgress(),
	}
}

// InitialModelWithDuration returns a model that has already started a timed
// session on r. On failure it falls back to the menu with the error shown.
func InitialModelWithDuration(r *runner.Runner, d time.Duration) Model {
	m := InitialModel(r)
	if err := m.Runner.StartTimed(d); err != nil {
		m.ErrorMessage = err.Error()
		return m
	}
	m.State = stateRunning
	m.Duration = d
	return m
}

func newProgress() progress.Model {
	return progress.New(
		progress.WithGradient(gradientStart, gradientEnd),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)
}

// SetVersion sets the version shown in the help view.
func (m *Model) SetVersion(v string) {
	m.version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.State == stateRunning {
		return tick()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns the remaining duration of a timed session.
func (m Model) TimeRemaining() time.Duration {
	if m.State != stateRunning || m.Duration <= 0 {
		return 0
	}
	return m.Runner.TimeRemaining()
}
