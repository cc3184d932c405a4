package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stigoleg/mousemover/internal/platform"
	"github.com/stigoleg/mousemover/internal/ui"
	"github.com/stigoleg/mousemover/internal/util"
)

func formatError(err error) string {
	msg := err.Error()
	parts := strings.SplitN(msg, "\n\n", 2)
	if len(parts) != 2 {
		return ui.Current.Error.Render(msg)
	}

	errorBox := ui.Current.Help.
		BorderForeground(lipgloss.Color("#FF4040"))

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF4040")).
		Render(parts[0])

	details := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#999999")).
		Render(parts[1])

	return errorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
}

// ParseFlags resolves the configuration from os.Args and the environment.
// It prints and exits for --help, --version and invalid input.
func ParseFlags(version string) (*Config, error) {
	return ParseFlagsWithNow(version, time.Now())
}

// ParseFlagsWithNow is ParseFlags with a fixed current time for --clock.
func ParseFlagsWithNow(version string, now time.Time) (*Config, error) {
	cfg, err := Parse(os.Args[1:], now, nil)
	switch {
	case errors.Is(err, flag.ErrHelp):
		model := ui.InitialModel(nil)
		model.ShowHelp = true
		fmt.Print(model.View())
		os.Exit(0)
	case err != nil:
		fmt.Println(formatError(err))
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("mousemover version: %s\n", version)
		os.Exit(0)
	}
	return cfg, nil
}

// Parse layers defaults, the YAML file, environ (os environment when nil) and
// args. It never exits.
func Parse(args []string, now time.Time, environ map[string]string) (*Config, error) {
	flags := flag.NewFlagSet("mousemover", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		duration    string
		clock       string
		showVersion bool
		headless    bool
		logFile     string
		configFile  string
		device      string
		path        string
		reportID    uint
		seed        uint
		poll        time.Duration
		clockOffset uint
	)

	flags.StringVar(&duration, "duration", "", "Duration to keep moving (e.g., \"2h30m\" or minutes)")
	flags.StringVar(&duration, "d", "", "Duration to keep moving (e.g., \"2h30m\" or minutes)")
	flags.StringVar(&clock, "clock", "", "Keep moving until a clock time (e.g., \"17:30\" or \"5:30PM\")")
	flags.StringVar(&clock, "c", "", "Keep moving until a clock time (e.g., \"17:30\" or \"5:30PM\")")
	flags.BoolVar(&showVersion, "version", false, "Show version information")
	flags.BoolVar(&showVersion, "v", false, "Show version information")
	flags.BoolVar(&headless, "headless", false, "Run without the terminal UI")
	flags.StringVar(&logFile, "log", "", "Log file used by the terminal UI")
	flags.StringVar(&configFile, "config", "", "YAML configuration file")
	flags.StringVar(&device, "device", "", "Output device: "+strings.Join(platform.Kinds, ", "))
	flags.StringVar(&path, "path", "", "Device node (default /dev/hidg0 or /dev/uinput)")
	flags.UintVar(&reportID, "report-id", 0, "HID report ID prefixed to gadget reports (0 for none)")
	flags.UintVar(&seed, "seed", 0, "Entropy seed (0 for the built-in default)")
	flags.DurationVar(&poll, "poll", 0, "Polling loop interval")
	flags.UintVar(&clockOffset, "clock-offset", 0, "Starting value of the millisecond counter")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	ec, err := parseEnv(environ)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	if configFile == "" {
		configFile = ec.Config
	}
	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(ec)

	if showVersion {
		cfg.ShowVersion = true
	}
	if set["headless"] {
		cfg.Headless = headless
	}
	if set["log"] {
		cfg.LogFile = logFile
	}
	if set["device"] {
		cfg.Device = strings.ToLower(device)
	}
	if set["path"] {
		cfg.Path = path
	}
	if set["report-id"] {
		if reportID > 0xFF {
			return nil, fmt.Errorf("report id %d does not fit in a byte", reportID)
		}
		cfg.ReportID = uint8(reportID)
	}
	if set["seed"] {
		if seed > 0xFFFFFFFF {
			return nil, fmt.Errorf("seed %d does not fit in 32 bits", seed)
		}
		cfg.Seed = uint32(seed)
	}
	if set["poll"] {
		cfg.PollInterval = poll
	}
	if set["clock-offset"] {
		if clockOffset > 0xFFFFFFFF {
			return nil, fmt.Errorf("clock offset %d does not fit in 32 bits", clockOffset)
		}
		cfg.ClockOffset = uint32(clockOffset)
	}

	if duration != "" && clock != "" {
		return nil, errors.New("use either --duration or --clock, not both")
	}
	if duration != "" {
		d, err := util.ParseDuration(duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}
	if clock != "" {
		d, err := util.UntilClock(clock, now)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
