//go:build linux

package linux

import (
	"fmt"
	"io"

	"github.com/stigoleg/mousemover/internal/hid"
	"golang.org/x/sys/unix"
)

// GadgetDevicePath is the first HID function of a configfs USB gadget.
const GadgetDevicePath = "/dev/hidg0"

// GadgetDevice writes mouse reports to a USB gadget HID function, so the
// machine running mousemover appears as a mouse to the USB host it is
// plugged into.
type GadgetDevice struct {
	fd       int
	path     string
	reportID uint8
}

// OpenGadget opens a hidg node for non-blocking writes. reportID must match
// the function's report descriptor; zero means the descriptor has no IDs.
func OpenGadget(path string, reportID uint8) (*GadgetDevice, error) {
	if path == "" {
		path = GadgetDevicePath
	}
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open hid gadget %s: %w", path, err)
	}
	return &GadgetDevice{fd: fd, path: path, reportID: reportID}, nil
}

// Name implements platform.Device.
func (g *GadgetDevice) Name() string {
	return "gadget:" + g.path
}

// Ready reports whether the host has drained the previous report. It polls
// with a zero timeout and never blocks.
func (g *GadgetDevice) Ready() bool {
	if g.fd < 0 {
		return false
	}
	fds := []unix.PollFd{{Fd: int32(g.fd), Events: unix.POLLOUT}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&unix.POLLOUT != 0 && fds[0].Revents&(unix.POLLERR|unix.POLLHUP) == 0
}

// Emit writes one motion report.
func (g *GadgetDevice) Emit(dx, dy int8) error {
	buf := hid.Move(dx, dy).Encode(g.reportID)
	n, err := unix.Write(g.fd, buf)
	if err != nil {
		return fmt.Errorf("hid gadget write: %w", err)
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// Close releases the node.
func (g *GadgetDevice) Close() error {
	if g.fd < 0 {
		return nil
	}
	err := unix.Close(g.fd)
	g.fd = -1
	return err
}
