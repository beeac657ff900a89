//go:build !linux && !darwin && !windows

package browser

var desktopOpener = []string{"xdg-open"}
