package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6a737d"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c62828"))
)

// textTable renders fixed-width columns. Columns listed in rightAlign are right-aligned.
type textTable struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

func newTextTable(headers ...string) *textTable {
	return &textTable{headers: headers, rightAlign: map[int]bool{}}
}

func (t *textTable) alignRight(cols ...int) *textTable {
	for _, c := range cols {
		t.rightAlign[c] = true
	}
	return t
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// lipgloss Width includes padding
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	var sb strings.Builder
	sep := mutedStyle.Render("|")
	for i, h := range t.headers {
		sb.WriteString(t.cellStyle(headerStyle, i).Width(widths[i]).Render(h))
		if i < len(t.headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	body := lipgloss.NewStyle()
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(t.cellStyle(body, i).Width(widths[i]).Render(cell))
			if i < len(row)-1 && i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *textTable) cellStyle(base lipgloss.Style, col int) lipgloss.Style {
	s := base.Padding(0, 1)
	if t.rightAlign[col] {
		s = s.Align(lipgloss.Right)
	}
	return s
}
