// Package browser implements the numbered file browser and the launcher that
// hands files and URLs to an external viewer.
//
// The browser keeps no state besides the current directory: every redraw lists the
// directory again, so files created or removed by other programs show up at once.
package browser
