//go:build windows

package browser

var desktopOpener = []string{"cmd", "/c", "start", ""}
