package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/chartab/internal/model"
)

const (
	barGlyph        = "█"
	minBarWidth     = 4
	minPieRadius    = 2
	cellAspectRatio = 2.0
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Slice glyphs and colors repeat when there are more segments than entries.
var (
	sliceGlyphs = []string{"█", "▓", "▒", "░", "#", "*", "+", "o"}
	sliceColors = []lipgloss.Color{"#4C9BE8", "#F08A4B", "#6CC070", "#C85C8E", "#E8D44D", "#8C6BC8"}
)

// Draw renders spec as text that fits in width x height cells. Bar specs
// become horizontal bars; pie specs become a filled disc with a legend.
func Draw(spec Spec, width, height int, useColor bool) string {
	if len(spec.Segments) == 0 {
		return ""
	}
	if spec.Kind == model.ChartPie {
		return drawPie(spec, width, height, useColor)
	}
	return drawBars(spec, width, useColor)
}

func drawBars(spec Spec, width int, useColor bool) string {
	labelWidth := 0
	valueWidth := 0
	for _, seg := range spec.Segments {
		if w := runewidth.StringWidth(seg.Label); w > labelWidth {
			labelWidth = w
		}
		if w := len(formatValue(seg.Value)); w > valueWidth {
			valueWidth = w
		}
	}
	barArea := width - labelWidth - valueWidth - 4
	if barArea < minBarWidth {
		barArea = minBarWidth
	}
	maxVal := spec.Max()

	var b strings.Builder
	writeTitle(&b, spec.Title, useColor)
	if spec.YLabel != "" {
		b.WriteString(styled(axisStyle, fmt.Sprintf("%*s   %s", labelWidth, spec.XLabel, spec.YLabel), useColor))
		b.WriteString("\n")
	}
	for i, seg := range spec.Segments {
		n := 0
		if maxVal > 0 {
			n = int(math.Round(seg.Value / maxVal * float64(barArea)))
		}
		if n == 0 && seg.Value > 0 {
			n = 1
		}
		bar := strings.Repeat(barGlyph, n)
		if useColor {
			bar = lipgloss.NewStyle().Foreground(sliceColors[i%len(sliceColors)]).Render(bar)
		}
		label := runewidth.FillLeft(seg.Label, labelWidth)
		fmt.Fprintf(&b, "%s │ %s %s\n", label, bar, formatValue(seg.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func drawPie(spec Spec, width, height int, useColor bool) string {
	total := spec.Total()
	if total <= 0 {
		return ""
	}
	legendLines := len(spec.Segments)
	radius := (height - legendLines - 3) / 2
	if maxR := int(float64(width) / (2 * cellAspectRatio)); width > 0 && radius > maxR {
		radius = maxR
	}
	if radius < minPieRadius {
		radius = minPieRadius
	}

	bounds := make([]float64, len(spec.Segments))
	var acc float64
	for i, seg := range spec.Segments {
		acc += seg.Value / total
		bounds[i] = acc
	}

	var b strings.Builder
	writeTitle(&b, spec.Title, useColor)
	cols := int(math.Ceil(float64(radius) * cellAspectRatio))
	for y := -radius; y <= radius; y++ {
		var row strings.Builder
		for x := -cols; x <= cols; x++ {
			dx := float64(x) / cellAspectRatio
			dy := float64(y)
			if dx*dx+dy*dy > float64(radius*radius)+0.5 {
				row.WriteByte(' ')
				continue
			}
			row.WriteString(sliceCell(sliceAt(bounds, dx, dy), useColor))
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, seg := range spec.Segments {
		pct := seg.Value / total * 100
		fmt.Fprintf(&b, "%s %s %s (%.1f%%)\n", sliceCell(i, useColor), seg.Label, formatValue(seg.Value), pct)
	}
	return strings.TrimRight(b.String(), "\n")
}

// sliceAt maps a point to a slice index. Angles start at twelve o'clock
// and run clockwise.
func sliceAt(bounds []float64, dx, dy float64) int {
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	frac := angle / (2 * math.Pi)
	for i, bound := range bounds {
		if frac < bound {
			return i
		}
	}
	return len(bounds) - 1
}

func sliceCell(i int, useColor bool) string {
	glyph := sliceGlyphs[i%len(sliceGlyphs)]
	if !useColor {
		return glyph
	}
	return lipgloss.NewStyle().Foreground(sliceColors[i%len(sliceColors)]).Render(barGlyph)
}

func writeTitle(b *strings.Builder, title string, useColor bool) {
	if title == "" {
		return
	}
	b.WriteString(styled(titleStyle, title, useColor))
	b.WriteString("\n\n")
}

func styled(style lipgloss.Style, s string, useColor bool) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
