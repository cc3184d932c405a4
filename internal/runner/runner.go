// Package runner hosts the motion scheduler: it opens the output device,
// polls the scheduler from a dedicated goroutine and tears everything down
// when the session ends.
package runner

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/mousemover/internal/entropy"
	"github.com/stigoleg/mousemover/internal/motion"
	"github.com/stigoleg/mousemover/internal/platform"
)

// DefaultPollInterval keeps deadlines within a millisecond of their target.
const DefaultPollInterval = time.Millisecond

const defaultStopTimeout = 5 * time.Second

// ErrAlreadyRunning is returned when starting a session that is active.
var ErrAlreadyRunning = errors.New("mouse mover already running")

// Health represents the runtime health of the output device.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

// Opener creates the output device for a session.
type Opener func() (platform.Device, error)

// Options configures a Runner. Zero fields take defaults.
type Options struct {
	Open         Opener
	Clock        motion.Clock
	Seed         uint32
	Timing       motion.Timing
	PollInterval time.Duration
}

// Runner manages mouse mover sessions. A session polls one Scheduler until
// it is stopped or its duration elapses.
type Runner struct {
	mu      sync.Mutex
	running bool
	timer   *time.Timer
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	endTime time.Time
	device  platform.Device
	cleanup *CleanupManager
	snap    motion.Snapshot
	session uint64

	opts Options
	rng  *entropy.Source

	// failStreak counts consecutive failed emissions (atomic).
	failStreak int64
	// emitted is set once the first emission succeeded (atomic).
	emitted int32
}

// New returns an idle Runner.
func New(opts Options) *Runner {
	if opts.Open == nil {
		opts.Open = func() (platform.Device, error) { return platform.NewLogDevice(), nil }
	}
	if opts.Clock == nil {
		opts.Clock = motion.NewSystemClock(0)
	}
	if opts.Timing == (motion.Timing{}) {
		opts.Timing = motion.DefaultTiming()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	seed := opts.Seed
	if seed == 0 {
		seed = entropy.DefaultSeed
	}
	return &Runner{opts: opts, rng: entropy.New(seed)}
}

// IsRunning returns whether a session is active
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// StartIndefinite starts a session that runs until Stop.
func (r *Runner) StartIndefinite() error {
	if err := r.start(0); err != nil {
		return err
	}
	log.Printf("runner: started (indefinite)")
	return nil
}

// StartTimed starts a session that stops itself after d.
func (r *Runner) StartTimed(d time.Duration) error {
	if d <= 0 {
		return errors.New("duration must be positive")
	}
	if err := r.start(d); err != nil {
		return err
	}
	log.Printf("runner: started (timed=%s)", d)
	return nil
}

func (r *Runner) start(d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRunning
	}

	device, err := r.opts.Open()
	if err != nil {
		return err
	}

	r.cleanup = NewCleanupManager(defaultStopTimeout)
	r.cleanup.RegisterFunc(device.Name(), device.Close)
	r.device = device

	// The entropy source outlives sessions; the timers start idle each time.
	sched := motion.New(r.opts.Clock, device, r.rng, motion.WithTiming(r.opts.Timing))
	r.snap = sched.Snapshot()
	atomic.StoreInt64(&r.failStreak, 0)
	atomic.StoreInt32(&r.emitted, 0)

	r.session++
	session := r.session

	var ctx context.Context
	if d > 0 {
		ctx, r.cancel = context.WithTimeout(context.Background(), d)
		r.endTime = time.Now().Add(d)
		r.timer = time.AfterFunc(d, func() {
			r.expire(session, d)
		})
	} else {
		ctx, r.cancel = context.WithCancel(context.Background())
		r.endTime = time.Time{}
	}

	r.done = make(chan struct{})
	r.stopped = make(chan struct{})
	r.running = true
	go r.loop(ctx, sched, device.Name(), r.done)
	return nil
}

// loop is the host polling loop. The scheduler is touched only here; other
// goroutines read the published snapshot.
func (r *Runner) loop(ctx context.Context, sched *motion.Scheduler, name string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	var last motion.Stats
	for {
		sched.Poll()
		snap := sched.Snapshot()

		r.mu.Lock()
		r.snap = snap
		r.mu.Unlock()

		r.observe(name, last, snap)
		last = snap.Stats

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) observe(name string, last motion.Stats, snap motion.Snapshot) {
	st := snap.Stats
	if st.Cycles != last.Cycles {
		log.Printf("runner: cycle %d started at %dms (window %dms)", st.Cycles, snap.State.CycleStart, snap.State.MovementDuration)
	}
	if st.Failures != last.Failures {
		n := atomic.AddInt64(&r.failStreak, 1)
		if n == 1 || n%100 == 0 {
			log.Printf("runner: %s emit failed (%d in a row): %v", name, n, st.LastErr)
		}
	}
	if st.Emissions != last.Emissions {
		if atomic.SwapInt64(&r.failStreak, 0) > 0 {
			log.Printf("runner: %s recovered", name)
		}
		atomic.StoreInt32(&r.emitted, 1)
	}
}

// expire stops the session that armed the timer, unless it was already
// replaced by a newer one.
func (r *Runner) expire(session uint64, d time.Duration) {
	r.mu.Lock()
	current := r.session
	r.mu.Unlock()
	if current != session {
		return
	}
	if err := r.Stop(); err != nil {
		log.Printf("runner: stop after %s: %v", d, err)
	}
}

// Stop ends the active session, if any.
func (r *Runner) Stop() error {
	return r.StopWithTimeout(0)
}

// StopWithTimeout ends the active session and waits up to timeout for the
// polling loop to exit and the device to be released.
func (r *Runner) StopWithTimeout(timeout time.Duration) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	if timeout <= 0 {
		timeout = defaultStopTimeout
	}

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	done := r.done
	stopped := r.stopped
	cleanup := r.cleanup
	r.running = false
	r.device = nil
	r.endTime = time.Time{}
	r.mu.Unlock()
	defer close(stopped)

	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("runner: stop timeout exceeded after %v", timeout)
		return context.DeadlineExceeded
	}

	if errs := cleanup.Execute(); len(errs) > 0 {
		err := errors.Join(errs...)
		log.Printf("runner: stopped with error: %v", err)
		return err
	}
	log.Printf("runner: stopped")
	return nil
}

// Done is closed once the current session has stopped and released its
// device. It returns nil when no session was ever started.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// TimeRemaining returns the remaining duration for a timed session
func (r *Runner) TimeRemaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.endTime.IsZero() {
		return 0
	}
	remaining := time.Until(r.endTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Snapshot returns the scheduler state published by the last poll.
func (r *Runner) Snapshot() motion.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// DeviceName returns the active device's name, or "" when stopped.
func (r *Runner) DeviceName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return ""
	}
	return r.device.Name()
}

// Health reports whether the device is currently accepting movements.
func (r *Runner) Health() Health {
	if atomic.LoadInt64(&r.failStreak) > 0 {
		return HealthFailed
	}
	if atomic.LoadInt32(&r.emitted) == 0 {
		return HealthUnknown
	}
	return HealthOK
}
