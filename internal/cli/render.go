package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	negativeStyle = cellStyle.Foreground(ColorRed)
)

// Table is a bordered text table for CLI output
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a section title followed by a blank line
func RenderTitle(title string) string {
	return titleStyle.Render(title) + "\n"
}

// RenderSummary renders label/value pairs, one per line, with aligned values
func RenderSummary(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(p[0] + strings.Repeat(" ", width-len(p[0]))))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTable renders a rounded-border table.
// The first column is left-aligned; all others are right-aligned.
// Cells starting with "-" are highlighted as negative amounts.
func RenderTable(t Table) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row >= 0 && row < len(t.Rows) && col < len(t.Rows[row]) && strings.HasPrefix(t.Rows[row][col], "-"):
				style = negativeStyle
			default:
				style = cellStyle
			}
			if col > 0 {
				return style.Align(lipgloss.Right)
			}
			return style.Align(lipgloss.Left)
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderTitle(t.Title))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}
