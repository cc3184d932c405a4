package main

import (
	"errors"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/mousemover/internal/config"
	"github.com/stigoleg/mousemover/internal/motion"
	"github.com/stigoleg/mousemover/internal/platform"
	"github.com/stigoleg/mousemover/internal/runner"
	"github.com/stigoleg/mousemover/internal/ui"
)

const appVersion = "0.4.0"

func main() {
	cfg, err := config.ParseFlags(appVersion)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	if !cfg.Headless {
		f, err := tea.LogToFile(cfg.LogFile, "debug")
		if err != nil {
			log.Printf("main: %v", err)
			return 1
		}
		defer f.Close()
	}

	if c := platform.Check(cfg.Device, cfg.Path); !c.CanOpen {
		log.Printf("main: device %s may not open: %s", cfg.Device, c.ErrorMessage)
	}

	r := runner.New(runner.Options{
		Open: func() (platform.Device, error) {
			return platform.Open(cfg.Device, cfg.Path, cfg.ReportID)
		},
		Clock:        motion.NewSystemClock(cfg.ClockOffset),
		Seed:         cfg.Seed,
		Timing:       cfg.Timing,
		PollInterval: cfg.PollInterval,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)

	if cfg.Headless {
		return runHeadless(r, cfg, sigChan)
	}
	return runTUI(r, cfg, sigChan)
}

func runHeadless(r *runner.Runner, cfg *config.Config, sigChan <-chan os.Signal) int {
	var err error
	if cfg.Duration > 0 {
		err = r.StartTimed(cfg.Duration)
	} else {
		err = r.StartIndefinite()
	}
	if err != nil {
		log.Printf("main: %v", err)
		return 1
	}

	done := r.Done()
	for {
		select {
		case sig := <-sigChan:
			if isSIGTSTPForPlatform(sig) {
				log.Printf("main: ignoring %v while moving", sig)
				continue
			}
			log.Printf("main: received signal: %v", sig)
			if err := r.Stop(); err != nil {
				log.Printf("main: stop: %v", err)
				return 1
			}
			return 0
		case <-done:
			snap := r.Snapshot()
			log.Printf("main: finished after %d cycles, %d moves", snap.Stats.Cycles, snap.Stats.Emissions)
			return 0
		}
	}
}

func runTUI(r *runner.Runner, cfg *config.Config, sigChan <-chan os.Signal) int {
	var model ui.Model
	if cfg.Duration > 0 {
		model = ui.InitialModelWithDuration(r, cfg.Duration)
	} else {
		model = ui.InitialModel(r)
	}
	model.SetVersion(appVersion)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	go func() {
		for sig := range sigChan {
			if isSIGTSTPForPlatform(sig) {
				log.Printf("main: ignoring %v while the UI is open", sig)
				continue
			}
			log.Printf("main: received signal: %v", sig)
			if err := r.Stop(); err != nil {
				log.Printf("main: stop: %v", err)
			}
			p.Kill()
			return
		}
	}()

	_, err := p.Run()
	if stopErr := r.Stop(); stopErr != nil {
		log.Printf("main: stop: %v", stopErr)
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("main: error running program: %v", err)
		return 1
	}
	return 0
}
