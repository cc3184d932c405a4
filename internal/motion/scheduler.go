// Package motion decides when the pointer moves and by how much.
//
// A Scheduler runs a fixed-period cycle. Each cycle opens an active window of
// random length; inside it, small random deltas are emitted at random
// intervals. Outside the window nothing is sent until the next cycle. Poll is
// meant to be called from a tight host loop and never blocks.
package motion

// Sink is the output transport for relative pointer motion.
type Sink interface {
	// Ready reports whether the transport can take a report right now.
	Ready() bool
	// Emit sends one relative movement with no buttons and no scroll.
	Emit(dx, dy int8) error
}

// Entropy is the random source consumed by the scheduler.
type Entropy interface {
	Range(min, max int32) int32
	Perturb(extra uint32)
}

// Phase is the scheduler's logical state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMoving
	PhaseQuiescent
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMoving:
		return "moving"
	case PhaseQuiescent:
		return "quiescent"
	default:
		return "unknown"
	}
}

// State is the persistent timer state. All timestamps are Clock readings.
type State struct {
	CycleStart       uint32
	MovementStart    uint32
	MovementDuration uint32
	NextMovementDue  uint32
	MovementActive   bool
	CycleStarted     bool
}

// Phase derives the logical state from the timer fields.
func (s State) Phase() Phase {
	switch {
	case !s.CycleStarted:
		return PhaseIdle
	case s.MovementActive:
		return PhaseMoving
	default:
		return PhaseQuiescent
	}
}

// Stats counts what the scheduler has done since creation.
type Stats struct {
	Cycles    uint64
	Emissions uint64
	Deferred  uint64
	Failures  uint64
	LastDX    int8
	LastDY    int8
	LastErr   error
}

// Snapshot is a copy of the scheduler's state and counters.
type Snapshot struct {
	State  State
	Stats  Stats
	Now    uint32
	Timing Timing
}

// Scheduler is the two-level movement timer. It is not safe for concurrent
// use; the caller owns it and drives it from a single goroutine.
type Scheduler struct {
	clock  Clock
	sink   Sink
	rng    Entropy
	timing Timing

	state State
	stats Stats
	now   uint32
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTiming overrides DefaultTiming. The timing must already be validated.
func WithTiming(t Timing) Option {
	return func(s *Scheduler) {
		s.timing = t
	}
}

// New returns a Scheduler in the idle state. The first Poll starts a cycle.
func New(clock Clock, sink Sink, rng Entropy, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clock,
		sink:   sink,
		rng:    rng,
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Poll evaluates the timers once and emits at most one movement.
func (s *Scheduler) Poll() {
	now := s.clock.NowMillis()
	s.now = now
	st := &s.state

	if !st.CycleStarted || now-st.CycleStart >= s.timing.CyclePeriod {
		s.startCycle(now)
	}

	if st.MovementActive && now-st.MovementStart >= st.MovementDuration {
		st.MovementActive = false
	}

	if !st.CycleStarted || !st.MovementActive || !reached(now, st.NextMovementDue) {
		return
	}

	// The deadline is kept when the transport is busy so the next ready
	// poll fires immediately.
	if !s.sink.Ready() {
		s.stats.Deferred++
		return
	}

	dx, dy := s.delta()
	if err := s.sink.Emit(dx, dy); err != nil {
		s.stats.Failures++
		s.stats.LastErr = err
	} else {
		s.stats.Emissions++
		s.stats.LastDX, s.stats.LastDY = dx, dy
	}

	st.NextMovementDue = now + uint32(s.rng.Range(s.timing.Interval.Min, s.timing.Interval.Max))
}

func (s *Scheduler) startCycle(now uint32) {
	st := &s.state
	st.CycleStart = now
	st.MovementStart = now
	st.CycleStarted = true
	st.MovementActive = true
	st.MovementDuration = uint32(s.rng.Range(s.timing.Window.Min, s.timing.Window.Max))
	st.NextMovementDue = now
	s.rng.Perturb(now)
	s.stats.Cycles++
}

// delta draws a movement that is non-zero on at least one axis. The zero
// fallback only draws positive values.
func (s *Scheduler) delta() (int8, int8) {
	d := s.timing.Delta
	dx := int8(s.rng.Range(d.Min, d.Max))
	dy := int8(s.rng.Range(d.Min, d.Max))
	if dx == 0 && dy == 0 {
		n := s.timing.Nudge
		dx = int8(s.rng.Range(n.Min, n.Max))
		dy = int8(s.rng.Range(n.Min, n.Max))
	}
	return dx, dy
}

// State returns a copy of the timer fields.
func (s *Scheduler) State() State {
	return s.state
}

// Snapshot returns the timers, counters and the clock reading of the last
// Poll.
func (s *Scheduler) Snapshot() Snapshot {
	return Snapshot{
		State:  s.state,
		Stats:  s.stats,
		Now:    s.now,
		Timing: s.timing,
	}
}

// reached reports whether deadline is at or before now on a wrapping
// counter. Deadlines are never more than one interval ahead, well below 2^31.
func reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}
