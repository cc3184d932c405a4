package platform

import "log"

// LogDevice is a dry-run device that logs every movement instead of sending
// it anywhere.
type LogDevice struct {
	closed bool
}

// NewLogDevice returns a ready LogDevice.
func NewLogDevice() *LogDevice {
	return &LogDevice{}
}

func (d *LogDevice) Name() string { return KindLog }

func (d *LogDevice) Ready() bool { return !d.closed }

func (d *LogDevice) Emit(dx, dy int8) error {
	log.Printf("log: move dx=%d dy=%d", dx, dy)
	return nil
}

func (d *LogDevice) Close() error {
	d.closed = true
	return nil
}
