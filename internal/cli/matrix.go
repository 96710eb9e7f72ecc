package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-vref/dsp/refmatrix"
)

var (
	cellStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Right)

	activeCellStyle = cellStyle.
			Bold(true).
			Foreground(primaryColor)

	inactiveCellStyle = cellStyle.
				Foreground(mutedColor)

	headerCellStyle = cellStyle.
			Foreground(accentColor)

	matrixBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// RenderMatrix draws m as a grid with 1-based channel labels: rows are the
// re-referenced channels, columns their sources. Active entries are
// highlighted and each row ends with its active count.
func RenderMatrix(m *refmatrix.Matrix) string {
	n := m.NumChannels()
	if n == 0 {
		return matrixBoxStyle.Render("(no channels)")
	}

	var sb strings.Builder

	sb.WriteString(headerCellStyle.Render(""))

	for c := range n {
		sb.WriteString(headerCellStyle.Render(strconv.Itoa(c + 1)))
	}

	sb.WriteString(headerCellStyle.Render("refs"))

	for r := range n {
		sb.WriteString("\n")
		sb.WriteString(headerCellStyle.Render(strconv.Itoa(r + 1)))

		for c := range n {
			v := m.Get(r, c)

			style := inactiveCellStyle
			if v > 0 {
				style = activeCellStyle
			}

			sb.WriteString(style.Render(strconv.FormatFloat(float64(v), 'g', 4, 32)))
		}

		sb.WriteString(headerCellStyle.Render(strconv.Itoa(m.ActiveCount(r))))
	}

	return matrixBoxStyle.Render(sb.String())
}
