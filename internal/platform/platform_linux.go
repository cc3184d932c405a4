//go:build linux

package platform

import "github.com/stigoleg/mousemover/internal/platform/linux"

func openGadget(path string, reportID uint8) (Device, error) {
	g, err := linux.OpenGadget(path, reportID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func openUinput(path string) (Device, error) {
	u, err := linux.OpenUinput(path)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func checkNode(kind, path string) Capability {
	if path == "" {
		path = DefaultPath(kind)
	}
	a := linux.CheckAccess(path)
	return Capability{CanOpen: a.Writable, ErrorMessage: a.Problem}
}

// DefaultPath returns the device node used when none is configured.
func DefaultPath(kind string) string {
	switch kind {
	case KindGadget:
		return linux.GadgetDevicePath
	case KindUinput:
		return linux.UinputDevicePath
	default:
		return ""
	}
}
