package ui

import (
	"fmt"
	"strings"
	"time"
)

var menuItems = [menuLen]string{
	"Move the pointer indefinitely",
	"Move the pointer for a while",
	"Quit",
}

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m)
	}

	switch m.State {
	case stateMenu:
		return menuView(m)
	case stateTimedInput:
		return timedInputView(m)
	case stateRunning:
		return runningView(m)
	}
	return ""
}

func menuView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Mouse Mover"))
	b.WriteString("\n\n")

	for i, opt := range menuItems {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render("> " + opt))
		} else {
			b.WriteString(Current.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys.ForState(stateMenu)))
	return b.String()
}

func timedInputView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Enter Duration"))
	b.WriteString("\n\n")

	b.WriteString(Current.Unselected.Render("Minutes, or a duration such as 1h30m:"))
	b.WriteString("\n")
	input := m.Input
	if input == "" {
		input = " "
	}
	b.WriteString(Current.InputBox.Render(input))
	b.WriteString("\n")

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys.ForState(stateTimedInput)))
	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder
	snap := m.Runner.Snapshot()
	stats := snap.Stats

	b.WriteString(Current.Title.Render("Mouse Mover Active"))
	b.WriteString("\n\n")

	phase := snap.State.Phase().String()
	if snap.State.MovementActive {
		b.WriteString(Current.ActiveStatus.Render("Pointer is moving"))
	} else {
		b.WriteString(Current.IdleStatus.Render("Waiting for the next cycle"))
	}
	b.WriteString("\n\n")

	health := m.Runner.Health().String()
	rows := [][2]string{
		{"device", m.Runner.DeviceName()},
		{"health", Current.Health[health].Render(health)},
		{"phase", phase},
		{"cycles", fmt.Sprint(stats.Cycles)},
		{"moves", fmt.Sprint(stats.Emissions)},
		{"deferred", fmt.Sprint(stats.Deferred)},
		{"failures", fmt.Sprint(stats.Failures)},
		{"last move", fmt.Sprintf("%+d, %+d", stats.LastDX, stats.LastDY)},
	}
	for _, row := range rows {
		b.WriteString(Current.Label.Render(row[0]))
		b.WriteString(Current.Value.Render(row[1]))
		b.WriteString("\n")
	}
	if stats.LastErr != nil {
		b.WriteString(Current.Error.Render("last error: " + stats.LastErr.Error()))
		b.WriteString("\n")
	}

	if m.Duration > 0 {
		remaining := m.TimeRemaining()
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(formatRemaining(remaining) + " remaining"))
		b.WriteString("\n ")
		b.WriteString(m.progress.ViewAs(elapsedFraction(remaining, m.Duration)))
		b.WriteString("\n")
	}

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys.ForState(stateRunning)))
	return b.String()
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func elapsedFraction(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	p := 1 - float64(remaining)/float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func helpView(m Model) string {
	version := m.version
	if version == "" {
		version = "dev"
	}
	text := `Mouse Mover ` + version + `

Moves the pointer in short random bursts so the host sees a present user.

Usage:
  mousemover [flags]

Flags:
  -d, --duration string   Keep moving for a duration ("2h30m" or minutes)
  -c, --clock string      Keep moving until a clock time ("17:30", "5:30PM")
      --device string     Output device: gadget, uinput or log
      --path string       Device node (default /dev/hidg0 or /dev/uinput)
      --report-id uint    HID report ID prefixed to gadget reports
      --seed uint         Entropy seed
      --poll duration     Polling loop interval (default 1ms)
      --config string     YAML configuration file
      --headless          Run without the terminal UI
      --log string        Log file used by the terminal UI
  -v, --version           Show version information
  -h, --help              Show this message

Environment:
  MOUSEMOVER_DEVICE, MOUSEMOVER_PATH, MOUSEMOVER_REPORT_ID, MOUSEMOVER_SEED,
  MOUSEMOVER_POLL, MOUSEMOVER_CONFIG, MOUSEMOVER_HEADLESS, MOUSEMOVER_LOG

Examples:
  mousemover                      # Start with interactive TUI
  mousemover -d 2h30m             # Move for 2 hours and 30 minutes
  mousemover -c 17:30 --headless  # Move until 17:30 without the TUI
  mousemover --device uinput      # Use a uinput virtual mouse`

	return Current.Help.Render(text) + "\n" + m.help.View(m.keys.ForState(stateHelp))
}
