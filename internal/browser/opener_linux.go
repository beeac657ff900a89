//go:build linux

package browser

// desktopOpener is the last resort outside Termux on Linux
var desktopOpener = []string{"xdg-open"}
