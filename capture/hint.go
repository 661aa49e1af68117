package capture

import (
	"os"

	"golang.org/x/sys/unix"
)

// openHint inspects the device node behind a failed open and names the
// usual suspects. Only device-backed sources get a hint; files and URLs
// fail for too many reasons to guess at.
func openHint(src Source) string {
	path := src.devicePath()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "device path " + path + " does not exist"
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return "permission denied for camera device " + path
	}
	return ""
}
