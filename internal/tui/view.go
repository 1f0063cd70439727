package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/chartab/internal/chart"
	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/experiment"
	"github.com/verte-zerg/chartab/internal/model"
	"github.com/verte-zerg/chartab/internal/stats"
)

const (
	appTitle     = "NYC Taxi Payment Method Analysis"
	question     = "What is the most common type of payment in the NYC Taxi Data?"
	aboutLine    = "This is an A/B testing experiment to compare visualization effectiveness."
	plotHeight   = 8
	analysisNote = "Answer at least two charts to see the detailed analysis."
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Session %s  State: %s  Attempts: %d", shortID(m.session.ID()), m.session.State(), m.session.Attempts())
	if !m.loading && m.data.Source != "" {
		summary += fmt.Sprintf("  Data: %s (%s)", m.data.Source, m.data.Origin)
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	var help string
	switch m.session.State() {
	case experiment.StateIdle:
		help = "Start: s"
	case experiment.StatePresented:
		help = "Answered: space/enter"
	case experiment.StateAnswered:
		help = "Try another chart: n"
	}
	help += "  Reset: r  Reload data: f  Tabs: tab/left/right  Scroll: up/down  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	lines := []string{m.renderHelp()}
	if status := m.statusLine(); status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, m.renderAbout())
	return strings.Join(lines, "\n")
}

func (m *Model) renderAbout() string {
	return footerStyle.Render(truncateLine(aboutLine, m.width))
}

func (m *Model) statusLine() string {
	switch {
	case m.loading:
		return headerStyle.Render("Loading data...")
	case m.data.Warning != "":
		return warningStyle.Render(truncateLine(m.data.Warning, m.width))
	default:
		return ""
	}
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.contentWidth()
	m.viewports[tabExperiment].SetContent(m.renderExperiment(width))
	m.viewports[tabResults].SetContent(m.renderResults(width))
	if len(m.report.Rows) > 1 {
		m.viewports[tabTrends].SetContent(renderTrends(m.report, width, m.useColor))
		m.viewports[tabComparison].SetContent(renderComparison(m.report))
	} else {
		m.viewports[tabTrends].SetContent(analysisNote)
		m.viewports[tabComparison].SetContent(analysisNote)
	}
}

func (m *Model) renderExperiment(width int) string {
	lines := []string{titleStyle.Render(appTitle), question, ""}
	trial, presented := m.session.Current()
	switch {
	case !presented:
		lines = append(lines, "Press s to start the A/B test. A bar or pie chart is picked at random;",
			"press space as soon as you have found the answer.")
	case m.loading:
		lines = append(lines, "Loading data...")
	default:
		lines = append(lines, m.renderChart(trial.ChartType, width))
	}
	if m.answerNote != "" {
		lines = append(lines, "", successStyle.Render(m.answerNote))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderChart(kind model.ChartType, width int) string {
	if m.dataErr != nil {
		return errorStyle.Render(chartError(m.dataErr))
	}
	spec, err := chart.Render(kind, m.counts)
	if err != nil {
		return errorStyle.Render(chartError(err))
	}
	return chart.Draw(spec, width, m.contentHeight()-4, m.useColor)
}

func (m *Model) renderResults(width int) string {
	if m.session.State() == experiment.StateIdle {
		return "Start the test to see results."
	}
	var sections []string
	if m.dataErr != nil {
		sections = append(sections, errorStyle.Render(chartError(m.dataErr)))
	} else if label, count, err := dataset.Mode(m.counts); err == nil {
		cards := lipgloss.JoinHorizontal(lipgloss.Top,
			metricCard("Most Common Payment", label),
			metricCard("Total Rides", fmt.Sprintf("%d", count)),
		)
		sections = append(sections, cards)
	}
	if len(m.report.Rows) == 0 {
		return strings.Join(append(sections, "No answers recorded yet."), "\n\n")
	}

	var buf bytes.Buffer
	if err := stats.RenderAttemptTable(&buf, m.report.Rows); err != nil {
		return fmt.Sprintf("Failed to render results: %v", err)
	}
	sections = append(sections, "Response Times\n"+strings.TrimRight(buf.String(), "\n"))

	buf.Reset()
	if err := stats.RenderTimesByChart(&buf, m.report, width, plotHeight, m.useColor); err != nil {
		return fmt.Sprintf("Failed to render results: %v", err)
	}
	sections = append(sections, strings.TrimRight(buf.String(), "\n"))
	sections = append(sections, chart.Draw(averageSpec(m.report), width, plotHeight, m.useColor))
	return strings.Join(sections, "\n\n")
}

func renderTrends(report stats.Report, width int, useColor bool) string {
	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, report, width, plotHeight, useColor); err != nil {
		return fmt.Sprintf("Failed to render trends: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderComparison(report stats.Report) string {
	var buf bytes.Buffer
	if err := stats.RenderGroupTable(&buf, report.Groups); err != nil {
		return fmt.Sprintf("Failed to render comparison: %v", err)
	}
	// Distribution and significance need answers for both chart types.
	if report.BothGroupsSampled() {
		buf.WriteString("\n")
		if err := stats.RenderBoxes(&buf, report.Boxes); err != nil {
			return fmt.Sprintf("Failed to render comparison: %v", err)
		}
		buf.WriteString("\n")
		if err := stats.RenderComparison(&buf, report.Comparison); err != nil {
			return fmt.Sprintf("Failed to render comparison: %v", err)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// averageSpec builds the average time bars for chart types with answers.
func averageSpec(report stats.Report) chart.Spec {
	var labels []string
	var values []float64
	for _, g := range report.Groups {
		if g.Count == 0 {
			continue
		}
		labels = append(labels, string(g.ChartType))
		values = append(values, g.Mean)
	}
	return chart.Bars("Average Answer Time by Chart Type", labels, values)
}

func answerMessage(trial model.Trial) string {
	return fmt.Sprintf("Time taken to answer: %.2f seconds", trial.Seconds())
}

func chartError(err error) string {
	if errors.Is(err, dataset.ErrEmptyDataset) {
		return "No payment data to chart: the dataset is empty."
	}
	return fmt.Sprintf("Failed to draw chart: %v", err)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
