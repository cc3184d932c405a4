//go:build linux

package linux

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// uinput constants.
const (
	UinputDevicePath = "/dev/uinput"
	uinputBusTypeUSB = 0x03
	uinputVendorID   = 0x1234
	uinputProductID  = 0x5678
	uinputDeviceName = "mousemover"

	// Linux input event types and codes
	evSyn   = 0x00
	evKey   = 0x01
	evRel   = 0x02
	synRprt = 0x00
	relX    = 0x00
	relY    = 0x01
	btnLeft = 0x110

	// uinput ioctl commands
	uiSetEvbit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeybit  = 0x40045565 // _IOW('U', 101, int)
	uiSetRelbit  = 0x40045566 // _IOW('U', 102, int)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)
)

// Freshly created input devices are ignored by readers until udev and the
// compositor have picked them up.
const uinputSettleDelay = 250 * time.Millisecond

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name       [80]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [64]int32
	Absmin     [64]int32
	Absfuzz    [64]int32
	Absflat    [64]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// UinputDevice is a virtual relative mouse on the local machine.
type UinputDevice struct {
	fd      int
	path    string
	readyAt time.Time
}

// OpenUinput creates a virtual mouse through the uinput node at path.
func OpenUinput(path string) (*UinputDevice, error) {
	if path == "" {
		path = UinputDevicePath
	}
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open uinput device %s: %w", path, err)
	}
	u := &UinputDevice{fd: fd, path: path}

	if err := u.enableAxes(); err != nil {
		u.Close()
		return nil, fmt.Errorf("failed to enable relative axes: %w", err)
	}
	if err := u.createDevice(); err != nil {
		u.Close()
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}

	u.readyAt = time.Now().Add(uinputSettleDelay)
	return u, nil
}

func (u *UinputDevice) enableAxes() error {
	bits := []struct {
		req   uint
		value int
	}{
		{uiSetEvbit, evKey},
		{uiSetKeybit, btnLeft},
		{uiSetEvbit, evRel},
		{uiSetRelbit, relX},
		{uiSetRelbit, relY},
	}
	for _, b := range bits {
		if err := unix.IoctlSetInt(u.fd, b.req, b.value); err != nil {
			return err
		}
	}
	return nil
}

func (u *UinputDevice) createDevice() error {
	var dev uinputUserDev
	copy(dev.Name[:], uinputDeviceName)
	dev.ID = inputID{
		Bustype: uinputBusTypeUSB,
		Vendor:  uinputVendorID,
		Product: uinputProductID,
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, &dev); err != nil {
		return err
	}
	if _, err := unix.Write(u.fd, buf.Bytes()); err != nil {
		return err
	}
	return unix.IoctlSetInt(u.fd, uiDevCreate, 0)
}

// Name implements platform.Device.
func (u *UinputDevice) Name() string {
	return "uinput"
}

// Ready reports whether the virtual device exists and has settled.
func (u *UinputDevice) Ready() bool {
	return u.fd >= 0 && !time.Now().Before(u.readyAt)
}

// Emit moves the pointer by the given relative amounts.
func (u *UinputDevice) Emit(dx, dy int8) error {
	buf, err := encodeMotion(dx, dy)
	if err != nil {
		return err
	}
	if _, err := unix.Write(u.fd, buf); err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	return nil
}

// encodeMotion renders a REL_X, REL_Y, SYN_REPORT event triple.
func encodeMotion(dx, dy int8) ([]byte, error) {
	events := []inputEvent{
		{Type: evRel, Code: relX, Value: int32(dx)},
		{Type: evRel, Code: relY, Value: int32(dy)},
		{Type: evSyn, Code: synRprt, Value: 0},
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close destroys the virtual device and releases the node.
func (u *UinputDevice) Close() error {
	if u.fd < 0 {
		return nil
	}
	unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	err := unix.Close(u.fd)
	u.fd = -1
	return err
}
