package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestSplitGraph(t *testing.T) {
	tests := []struct {
		line, graph, rest string
	}{
		{"* 1a2b3c4 (HEAD -> main) Add notes", "* ", "1a2b3c4 (HEAD -> main) Add notes"},
		{"| * 9f8e7d6 Fix typo", "| * ", "9f8e7d6 Fix typo"},
		{"|/  ", "|/  ", ""},
		{"1a2b3c4 no graph", "", "1a2b3c4 no graph"},
	}
	for _, tt := range tests {
		graph, rest := SplitGraph(tt.line)
		require.Equal(t, tt.graph, graph, tt.line)
		require.Equal(t, tt.rest, rest, tt.line)
	}
}

func TestFormatLogLinePlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	for _, line := range []string{
		"* 1a2b3c4 (HEAD -> main, origin/main) Add notes",
		"| * 9f8e7d6 Fix typo",
		"|\\  ",
		"* 1a2b3c4",
	} {
		require.Equal(t, line, FormatLogLine(line))
	}
}
