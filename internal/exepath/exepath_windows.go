//go:build windows

package exepath

import (
	"golang.org/x/sys/windows"
)

// Long paths need more than MAX_PATH; the buffer grows until it fits.
func executable() (string, error) {
	n := uint32(windows.MAX_PATH)
	for {
		buf := make([]uint16, n)
		got, err := windows.GetModuleFileName(0, &buf[0], n)
		if err != nil {
			return "", err
		}
		if got < n {
			return windows.UTF16ToString(buf[:got]), nil
		}
		n *= 2
	}
}
