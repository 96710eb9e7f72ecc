package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-vref/stats/level"
)

var (
	reportLabelStyle = lipgloss.NewStyle().
				Width(5).
				Foreground(accentColor)

	reportValueStyle = lipgloss.NewStyle().
				Width(12).
				Align(lipgloss.Right)

	reportHeaderStyle = reportValueStyle.
				Bold(true).
				Foreground(accentColor)
)

// RenderLevelReport compares per-channel levels before and after processing.
// Both slices are indexed by channel; the shorter one bounds the table.
func RenderLevelReport(before, after []level.Level) string {
	var sb strings.Builder

	sb.WriteString(reportLabelStyle.Render("ch"))

	for _, h := range []string{"DC in", "DC out", "RMS in", "RMS out", "Δ RMS dB"} {
		sb.WriteString(reportHeaderStyle.Render(h))
	}

	for ch := range min(len(before), len(after)) {
		in, out := before[ch], after[ch]

		sb.WriteString("\n")
		sb.WriteString(reportLabelStyle.Render(strconv.Itoa(ch + 1)))
		sb.WriteString(reportValueStyle.Render(formatLevel(in.DC)))
		sb.WriteString(reportValueStyle.Render(formatLevel(out.DC)))
		sb.WriteString(reportValueStyle.Render(formatLevel(in.RMS)))
		sb.WriteString(reportValueStyle.Render(formatLevel(out.RMS)))
		sb.WriteString(reportValueStyle.Render(formatDelta(out.RMS_dB - in.RMS_dB)))
	}

	return matrixBoxStyle.Render(sb.String())
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func formatDelta(d float64) string {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return "-"
	}

	return fmt.Sprintf("%+.2f", d)
}
