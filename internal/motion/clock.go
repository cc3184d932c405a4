package motion

import "time"

// Clock reports elapsed milliseconds since some fixed origin. The counter is
// allowed to wrap; callers compare intervals by subtraction.
type Clock interface {
	NowMillis() uint32
}

// SystemClock derives a wrapping millisecond counter from the monotonic clock.
type SystemClock struct {
	origin time.Time
	offset uint32
}

// NewSystemClock returns a clock that reads offset at the moment of creation.
// A non-zero offset close to 2^32 makes the counter wrap soon after start.
func NewSystemClock(offset uint32) *SystemClock {
	return &SystemClock{origin: time.Now(), offset: offset}
}

// NowMillis implements Clock.
func (c *SystemClock) NowMillis() uint32 {
	return c.offset + uint32(time.Since(c.origin).Milliseconds())
}
