package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Timing)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Timing) {}},
		{name: "zero cycle", mutate: func(t *Timing) { t.CyclePeriod = 0 }, wantErr: "cycle period"},
		{name: "inverted window", mutate: func(t *Timing) { t.Window = Bounds{Min: 3000, Max: 1000} }, wantErr: "window"},
		{name: "inverted interval", mutate: func(t *Timing) { t.Interval = Bounds{Min: 10, Max: 5} }, wantErr: "interval"},
		{name: "negative interval", mutate: func(t *Timing) { t.Interval = Bounds{Min: -5, Max: 5} }, wantErr: "negative"},
		{name: "delta overflows int8", mutate: func(t *Timing) { t.Delta = Bounds{Min: -200, Max: 15} }, wantErr: "fit"},
		{name: "nudge includes zero", mutate: func(t *Timing) { t.Nudge = Bounds{Min: 0, Max: 3} }, wantErr: "exclude zero"},
		{name: "negative nudge", mutate: func(t *Timing) { t.Nudge = Bounds{Min: -3, Max: -1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timing := DefaultTiming()
			tt.mutate(&timing)
			err := timing.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBoundsString(t *testing.T) {
	assert.Equal(t, "[-15,15]", DefaultTiming().Delta.String())
}

func TestSystemClockOffsetWraps(t *testing.T) {
	c := NewSystemClock(0xFFFFFFFF)
	time.Sleep(5 * time.Millisecond)

	now := c.NowMillis()
	assert.Less(t, now, uint32(1000), "counter should have wrapped past zero")
}
