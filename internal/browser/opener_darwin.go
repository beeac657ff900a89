//go:build darwin

package browser

var desktopOpener = []string{"open"}
