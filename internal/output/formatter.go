package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// graphColors cycle across the columns of a `git log --graph` drawing
var graphColors = [][3]uint8{
	{76, 203, 241},
	{77, 202, 125},
	{238, 179, 65},
	{230, 112, 196},
	{139, 128, 246},
	{242, 106, 95},
}

// graphChars are the characters git uses to draw the commit graph
const graphChars = " *|/\\_-."

// GetGraphColor returns text styled with the color of graph column index
func GetGraphColor(text string, index int) string {
	color := graphColors[(index/2)%len(graphColors)]
	hexColor := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))
	return lipgloss.NewStyle().Foreground(hexColor).Render(text)
}

// SplitGraph splits a `git log --oneline --graph` line into its graph drawing and the commit text
func SplitGraph(line string) (string, string) {
	i := 0
	for i < len(line) && strings.IndexByte(graphChars, line[i]) >= 0 {
		i++
	}
	return line[:i], line[i:]
}

// FormatLogLine colors the graph column by column, the short hash and the ref decoration
func FormatLogLine(line string) string {
	graph, rest := SplitGraph(line)

	var b strings.Builder
	for i, char := range graph {
		if char == ' ' {
			b.WriteRune(char)
			continue
		}
		b.WriteString(GetGraphColor(string(char), i))
	}
	if rest == "" {
		return b.String()
	}

	hash, subject, _ := strings.Cut(rest, " ")
	b.WriteString(ColorHash(hash))
	if subject == "" {
		return b.String()
	}
	b.WriteByte(' ')
	if strings.HasPrefix(subject, "(") {
		if end := strings.Index(subject, ") "); end >= 0 {
			b.WriteString(ColorMagenta(subject[:end+1]))
			subject = subject[end+1:]
		}
	}
	b.WriteString(subject)
	return b.String()
}

// ColorHash colors an abbreviated commit hash
func ColorHash(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}
