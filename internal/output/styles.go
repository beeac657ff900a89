package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CCBF1"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4DCA7D"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ConfigureColors drops to plain ASCII output when NO_COLOR is set or stdout is not a terminal
func ConfigureColors() {
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Title styles a menu or section heading
func Title(text string) string {
	return titleStyle.Render(text)
}

// Dim styles secondary text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Key styles a menu index
func Key(text string) string {
	return keyStyle.Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return errorStyle.Render(text)
}
