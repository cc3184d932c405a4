package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stigoleg/mousemover/internal/motion"
)

// ErrUnsupported is returned for device kinds this platform cannot provide.
var ErrUnsupported = errors.New("unsupported platform")

// Device kinds accepted by Open.
const (
	KindGadget = "gadget"
	KindUinput = "uinput"
	KindLog    = "log"
)

// Kinds lists every device kind in the order shown to users.
var Kinds = []string{KindGadget, KindUinput, KindLog}

// Device is an output transport the scheduler can drive.
type Device interface {
	motion.Sink
	Name() string
	Close() error
}

// Capability is the result of checking whether a device kind will work.
type Capability struct {
	// CanOpen indicates whether the device node looks usable.
	CanOpen bool

	// ErrorMessage is a user-friendly explanation if it does not.
	ErrorMessage string
}

// Open returns the device for kind. path overrides the default node and may
// be empty. reportID only applies to gadget devices.
func Open(kind, path string, reportID uint8) (Device, error) {
	switch kind = strings.ToLower(kind); kind {
	case KindLog:
		return NewLogDevice(), nil
	case KindGadget:
		return openGadget(path, reportID)
	case KindUinput:
		return openUinput(path)
	default:
		return nil, fmt.Errorf("unknown device %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}

// Check reports whether Open is likely to succeed for kind without creating
// anything.
func Check(kind, path string) Capability {
	switch kind = strings.ToLower(kind); kind {
	case KindLog:
		return Capability{CanOpen: true}
	case KindGadget, KindUinput:
		return checkNode(kind, path)
	default:
		return Capability{ErrorMessage: fmt.Sprintf("unknown device %q", kind)}
	}
}
