package ui

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/mousemover/internal/platform"
	"github.com/stigoleg/mousemover/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newModel(t *testing.T) Model {
	t.Helper()
	m := InitialModel(runner.New(runner.Options{}))
	t.Cleanup(func() { _ = m.Runner.Stop() })
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel(t *testing.T) {
	m := InitialModel(nil)
	require.NotNil(t, m.Runner)
	assert.Equal(t, stateMenu, m.State)
	assert.Zero(t, m.Selected)
	assert.Empty(t, m.Input)
	assert.Empty(t, m.ErrorMessage)
	assert.Nil(t, m.Init())
	assert.False(t, m.Runner.IsRunning())
}

func TestMenuView(t *testing.T) {
	view := View(newModel(t))

	for _, opt := range menuItems {
		assert.Contains(t, view, opt)
	}
	assert.Contains(t, view, "> "+menuItems[menuIndefinite])
	assert.Contains(t, view, "quit")
}

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.Msg
		selected int
		want     int
	}{
		{name: "up at top stays", msg: tea.KeyMsg{Type: tea.KeyUp}, selected: 0, want: 0},
		{name: "down moves", msg: tea.KeyMsg{Type: tea.KeyDown}, selected: 0, want: 1},
		{name: "j moves", msg: runes("j"), selected: 1, want: 2},
		{name: "down at bottom stays", msg: tea.KeyMsg{Type: tea.KeyDown}, selected: 2, want: 2},
		{name: "k moves up", msg: runes("k"), selected: 2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			m.Selected = tt.selected
			got, _ := Update(tt.msg, m)
			assert.Equal(t, tt.want, got.Selected)
			assert.Equal(t, stateMenu, got.State)
		})
	}
}

func TestStartIndefiniteAndStop(t *testing.T) {
	m := newModel(t)

	m, cmd := Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	assert.Equal(t, stateRunning, m.State)
	assert.NotNil(t, cmd)
	assert.True(t, m.Runner.IsRunning())
	assert.Zero(t, m.TimeRemaining())

	view := View(m)
	assert.Contains(t, view, "Mouse Mover Active")
	assert.Contains(t, view, platform.KindLog)
	assert.NotContains(t, view, "remaining")

	m, _ = Update(runes("s"), m)
	assert.Equal(t, stateMenu, m.State)
	assert.False(t, m.Runner.IsRunning())
}

func TestTimedInput(t *testing.T) {
	m := newModel(t)
	m.Selected = menuTimed

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.Equal(t, stateTimedInput, m.State)

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	assert.Equal(t, "Please enter a duration", m.ErrorMessage)

	m, _ = Update(runes("x"), m)
	assert.Empty(t, m.Input, "letters other than h, m and s are ignored")

	m, _ = Update(runes("1h9"), m)
	m, _ = Update(tea.KeyMsg{Type: tea.KeyBackspace}, m)
	assert.Equal(t, "1h", m.Input)
	assert.Contains(t, View(m), "1h")

	m, cmd := Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.Equal(t, stateRunning, m.State, m.ErrorMessage)
	assert.NotNil(t, cmd)
	assert.Equal(t, time.Hour, m.Duration)

	remaining := m.TimeRemaining()
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
	assert.Contains(t, View(m), "remaining")
}

func TestTimedInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "zero", input: "0", want: "Duration must be positive"},
		{name: "malformed", input: "hm", want: "Valid formats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			m.State = stateTimedInput
			m.Input = tt.input

			got, _ := Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
			assert.Equal(t, stateTimedInput, got.State)
			assert.Contains(t, got.ErrorMessage, tt.want)
			assert.False(t, got.Runner.IsRunning())
		})
	}
}

func TestTimedInputBack(t *testing.T) {
	m := newModel(t)
	m.State = stateTimedInput
	m.ErrorMessage = "stale"

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	assert.Equal(t, stateMenu, m.State)
	assert.Empty(t, m.ErrorMessage)
}

func TestInputLengthLimit(t *testing.T) {
	m := newModel(t)
	m.State = stateTimedInput

	m, _ = Update(runes(strings.Repeat("9", maxInputLen+4)), m)
	assert.Len(t, m.Input, maxInputLen)
}

func TestStartError(t *testing.T) {
	r := runner.New(runner.Options{
		Open: func() (platform.Device, error) { return nil, errors.New("no device") },
	})
	m := InitialModel(r)

	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	assert.Equal(t, stateMenu, m.State)
	assert.Equal(t, "no device", m.ErrorMessage)
	assert.Contains(t, View(m), "no device")

	m = InitialModelWithDuration(r, time.Minute)
	assert.Equal(t, stateMenu, m.State)
	assert.Equal(t, "no device", m.ErrorMessage)
}

func TestInitialModelWithDuration(t *testing.T) {
	r := runner.New(runner.Options{})
	m := InitialModelWithDuration(r, 5*time.Minute)
	t.Cleanup(func() { _ = r.Stop() })

	assert.Equal(t, stateRunning, m.State)
	assert.Equal(t, 5*time.Minute, m.Duration)
	assert.NotNil(t, m.Init())
	assert.True(t, r.IsRunning())
}

func TestTickReturnsToMenuWhenStopped(t *testing.T) {
	m := newModel(t)
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.Equal(t, stateRunning, m.State)

	m, cmd := Update(tickMsg(time.Now()), m)
	assert.Equal(t, stateRunning, m.State)
	assert.NotNil(t, cmd)

	require.NoError(t, m.Runner.Stop())
	m, cmd = Update(tickMsg(time.Now()), m)
	assert.Equal(t, stateMenu, m.State)
	assert.Nil(t, cmd)
}

func TestQuitStopsRunner(t *testing.T) {
	m := newModel(t)
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)
	require.True(t, m.Runner.IsRunning())

	_, cmd := Update(tea.KeyMsg{Type: tea.KeyCtrlC}, m)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.False(t, m.Runner.IsRunning())
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t)
	m.SetVersion("1.2.3")

	m, _ = Update(runes("?"), m)
	require.True(t, m.ShowHelp)
	view := View(m)
	assert.Contains(t, view, "Mouse Mover 1.2.3")
	assert.Contains(t, view, "--device")

	m, _ = Update(runes("j"), m)
	assert.True(t, m.ShowHelp, "other keys are swallowed")
	assert.Zero(t, m.Selected)

	m, _ = Update(runes("?"), m)
	assert.False(t, m.ShowHelp)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "0:00", formatRemaining(0))
	assert.Equal(t, "4:59", formatRemaining(4*time.Minute+59*time.Second))
	assert.Equal(t, "2:30:00", formatRemaining(150*time.Minute))
}

func TestElapsedFraction(t *testing.T) {
	assert.Equal(t, 0.0, elapsedFraction(time.Minute, 0))
	assert.Equal(t, 0.0, elapsedFraction(2*time.Minute, time.Minute))
	assert.Equal(t, 0.5, elapsedFraction(time.Minute, 2*time.Minute))
	assert.Equal(t, 1.0, elapsedFraction(0, time.Minute))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Menu", stateMenu.String())
	assert.Equal(t, "Running", stateRunning.String())
	assert.Equal(t, "Unknown", state(42).String())
}
