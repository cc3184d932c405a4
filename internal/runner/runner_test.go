package runner

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stigoleg/mousemover/internal/motion"
	"github.com/stigoleg/mousemover/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	mu     sync.Mutex
	moves  [][2]int8
	err    error
	closed bool
}

func (d *fakeDevice) Name() string { return "fake" }

func (d *fakeDevice) Ready() bool { return true }

func (d *fakeDevice) Emit(dx, dy int8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.moves = append(d.moves, [2]int8{dx, dy})
	return nil
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.moves)
}

func (d *fakeDevice) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func newTestRunner(dev *fakeDevice) *Runner {
	return New(Options{
		Open: func() (platform.Device, error) { return dev, nil },
	})
}

func TestRunnerIndefinite(t *testing.T) {
	dev := &fakeDevice{}
	r := newTestRunner(dev)
	defer r.Stop()

	require.False(t, r.IsRunning())
	require.NoError(t, r.StartIndefinite())
	require.True(t, r.IsRunning())
	assert.Equal(t, "fake", r.DeviceName())
	assert.Zero(t, r.TimeRemaining())

	// The first cycle emits on the first poll.
	require.Eventually(t, func() bool { return dev.count() > 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return r.Health() == HealthOK }, time.Second, 5*time.Millisecond)

	snap := r.Snapshot()
	assert.Equal(t, uint64(1), snap.Stats.Cycles)
	assert.Equal(t, motion.PhaseMoving, snap.State.Phase())

	require.NoError(t, r.Stop())
	assert.False(t, r.IsRunning())
	assert.True(t, dev.isClosed())
	assert.Empty(t, r.DeviceName())

	select {
	case <-r.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestRunnerAlreadyRunning(t *testing.T) {
	r := newTestRunner(&fakeDevice{})
	defer r.Stop()

	require.NoError(t, r.StartIndefinite())
	assert.ErrorIs(t, r.StartIndefinite(), ErrAlreadyRunning)
	assert.ErrorIs(t, r.StartTimed(time.Minute), ErrAlreadyRunning)
}

func TestRunnerTimed(t *testing.T) {
	dev := &fakeDevice{}
	r := newTestRunner(dev)
	defer r.Stop()

	require.NoError(t, r.StartTimed(150*time.Millisecond))
	remaining := r.TimeRemaining()
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 150*time.Millisecond)

	done := r.Done()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed session did not stop")
	}

	assert.False(t, r.IsRunning())
	assert.True(t, dev.isClosed())
	assert.Positive(t, dev.count())
}

func TestRunnerRejectsNonPositiveDuration(t *testing.T) {
	r := newTestRunner(&fakeDevice{})
	assert.Error(t, r.StartTimed(0))
	assert.False(t, r.IsRunning())
}

func TestRunnerOpenFailure(t *testing.T) {
	openErr := errors.New("no such device")
	r := New(Options{Open: func() (platform.Device, error) { return nil, openErr }})

	assert.ErrorIs(t, r.StartIndefinite(), openErr)
	assert.False(t, r.IsRunning())
	assert.NoError(t, r.Stop())
	assert.Nil(t, r.Done())
}

func TestRunnerHealthFailed(t *testing.T) {
	dev := &fakeDevice{err: errors.New("broken pipe")}
	r := newTestRunner(dev)
	defer r.Stop()

	assert.Equal(t, HealthUnknown, r.Health())
	require.NoError(t, r.StartIndefinite())

	require.Eventually(t, func() bool { return r.Health() == HealthFailed }, time.Second, 5*time.Millisecond)
	assert.Positive(t, r.Snapshot().Stats.Failures)
}

func TestRunnerRestart(t *testing.T) {
	dev := &fakeDevice{}
	r := newTestRunner(dev)
	defer r.Stop()

	require.NoError(t, r.StartIndefinite())
	require.Eventually(t, func() bool { return dev.count() > 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, r.Stop())

	require.NoError(t, r.StartIndefinite())
	assert.True(t, r.IsRunning())
	require.Eventually(t, func() bool { return r.Snapshot().Stats.Cycles == 1 }, time.Second, 5*time.Millisecond)
}

func TestHealthString(t *testing.T) {
	assert.Equal(t, "ok", HealthOK.String())
	assert.Equal(t, "failing", HealthFailed.String())
	assert.Equal(t, "unknown", HealthUnknown.String())
}
