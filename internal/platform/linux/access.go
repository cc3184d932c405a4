//go:build linux

package linux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Access describes whether a device node can be written by this process.
type Access struct {
	Path     string
	Writable bool
	// Problem is a user-facing explanation with fix instructions; empty when
	// Writable is true.
	Problem string
}

// CheckAccess inspects a uinput or hidg node without opening it.
func CheckAccess(path string) Access {
	a := Access{Path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		a.Problem = missingHint(path)
		return a
	}

	if err := unix.Access(path, unix.W_OK); err != nil {
		a.Problem = permissionHint(path, err)
		return a
	}

	a.Writable = true
	return a
}

func missingHint(path string) string {
	if isGadgetPath(path) {
		return fmt.Sprintf("%s does not exist. Configure a USB gadget with a HID function first:\n"+
			"  sudo modprobe libcomposite\n"+
			"  # create the gadget under /sys/kernel/config/usb_gadget and bind it to a UDC", path)
	}
	return fmt.Sprintf("%s does not exist. The uinput kernel module may not be loaded. Try: sudo modprobe uinput", path)
}

func permissionHint(path string, err error) string {
	if !isGadgetPath(path) && !inInputGroup() {
		return "uinput permission denied. Add your user to the 'input' group:\n" +
			"  sudo usermod -aG input $USER\n" +
			"Then log out and log back in for changes to take effect.\n\n" +
			"Alternatively, create a udev rule:\n" +
			"  echo 'KERNEL==\"uinput\", MODE=\"0664\", GROUP=\"input\"' | sudo tee /etc/udev/rules.d/99-uinput.rules\n" +
			"  sudo udevadm control --reload-rules\n" +
			"  sudo udevadm trigger"
	}
	return fmt.Sprintf("%s permission denied: %v\n\nRun as root or grant write access with a udev rule for %s", path, err, path)
}

func isGadgetPath(path string) bool {
	return strings.HasPrefix(path, "/dev/hidg")
}

// inInputGroup reports whether the process is in the "input" group. It
// answers true when the group cannot be resolved so the generic hint is used.
func inInputGroup() bool {
	g, err := user.LookupGroup("input")
	if err != nil {
		return true
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return true
	}
	groups, err := os.Getgroups()
	if err != nil {
		return true
	}
	return slices.Contains(groups, gid)
}
