package motion

import (
	"errors"
	"fmt"
	"math"
)

// Bounds is an inclusive [Min, Max] range handed to the entropy source.
type Bounds struct {
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`
}

func (b Bounds) validate(name string) error {
	if b.Max < b.Min {
		return fmt.Errorf("%s: max %d is less than min %d", name, b.Max, b.Min)
	}
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]", b.Min, b.Max)
}

// Timing holds the scheduler's timing and offset parameters. Durations are in
// milliseconds, deltas in HID counts.
type Timing struct {
	// CyclePeriod is the fixed length of the outer cycle.
	CyclePeriod uint32 `yaml:"cycle_ms"`

	// Window bounds the active movement window drawn at each cycle start.
	Window Bounds `yaml:"window_ms"`

	// Interval bounds the pause between two emissions.
	Interval Bounds `yaml:"interval_ms"`

	// Delta bounds each axis of an emitted movement.
	Delta Bounds `yaml:"delta"`

	// Nudge replaces both axes when Delta produced a zero movement.
	Nudge Bounds `yaml:"nudge"`
}

// DefaultTiming returns the stock 5 s cycle with a 1-3 s active window.
func DefaultTiming() Timing {
	return Timing{
		CyclePeriod: 5000,
		Window:      Bounds{Min: 1000, Max: 3000},
		Interval:    Bounds{Min: 50, Max: 200},
		Delta:       Bounds{Min: -15, Max: 15},
		Nudge:       Bounds{Min: 1, Max: 3},
	}
}

// Validate reports the first parameter that would feed the entropy source an
// empty range or overflow a HID report axis.
func (t Timing) Validate() error {
	if t.CyclePeriod == 0 {
		return errors.New("cycle period must be positive")
	}
	checks := []struct {
		name string
		b    Bounds
	}{
		{"window", t.Window},
		{"interval", t.Interval},
		{"delta", t.Delta},
		{"nudge", t.Nudge},
	}
	for _, c := range checks {
		if err := c.b.validate(c.name); err != nil {
			return err
		}
	}
	if t.Window.Min < 0 || t.Interval.Min < 0 {
		return errors.New("window and interval must not be negative")
	}
	if t.Delta.Min < math.MinInt8 || t.Delta.Max > math.MaxInt8 ||
		t.Nudge.Min < math.MinInt8 || t.Nudge.Max > math.MaxInt8 {
		return fmt.Errorf("delta and nudge must fit in [%d,%d]", math.MinInt8, math.MaxInt8)
	}
	if t.Nudge.Min <= 0 && t.Nudge.Max >= 0 {
		return errors.New("nudge range must exclude zero")
	}
	return nil
}
