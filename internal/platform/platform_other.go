//go:build !linux

package platform

func openGadget(string, uint8) (Device, error) {
	return nil, ErrUnsupported
}

func openUinput(string) (Device, error) {
	return nil, ErrUnsupported
}

func checkNode(kind, _ string) Capability {
	return Capability{ErrorMessage: kind + " output requires Linux; use --device log for a dry run"}
}

// DefaultPath returns the device node used when none is configured.
func DefaultPath(string) string {
	return ""
}
