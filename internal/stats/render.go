package stats

import (
	"fmt"
	"io"
	"math"

	"github.com/verte-zerg/chartab/internal/model"
)

// RenderAttemptTable prints the per-attempt tracking table.
func RenderAttemptTable(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded yet.")
		return err
	}
	cols := []column{
		{title: "Attempt"},
		{title: "Chart Type"},
		{title: "Time (seconds)", prec: 2},
		{title: "Moving Avg (3)", prec: 2},
	}
	tableRows := make([][]any, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []any{r.Attempt, string(r.ChartType), r.Seconds, r.MovingAvg})
	}
	return writeTable(w, cols, tableRows)
}

// RenderGroupTable prints the per-chart-type comparison table.
func RenderGroupTable(w io.Writer, groups []GroupSummary) error {
	cols := []column{
		{title: "Chart Type"},
		{title: "Average Time (s)", prec: 2},
		{title: "Min Time (s)", prec: 2},
		{title: "Max Time (s)", prec: 2},
		{title: "Count"},
	}
	tableRows := make([][]any, 0, len(groups))
	for _, g := range groups {
		tableRows = append(tableRows, []any{g.ChartType.Title(), g.Mean, g.Min, g.Max, g.Count})
	}
	return writeTable(w, cols, tableRows)
}

// RenderBoxes prints the distribution of answer times per chart type.
func RenderBoxes(w io.Writer, boxes []BoxSummary) error {
	if _, err := fmt.Fprintln(w, "Distribution of Answer Times"); err != nil {
		return err
	}
	cols := []column{
		{title: "Chart Type"},
		{title: "Min", prec: 2},
		{title: "Q1", prec: 2},
		{title: "Median", prec: 2},
		{title: "Q3", prec: 2},
		{title: "Max", prec: 2},
	}
	tableRows := make([][]any, 0, len(boxes))
	for _, b := range boxes {
		if b.Count == 0 {
			continue
		}
		tableRows = append(tableRows, []any{b.ChartType.Title(), b.Min, b.Q1, b.Median, b.Q3, b.Max})
	}
	return writeTable(w, cols, tableRows)
}

// RenderComparison prints the statistical analysis readout.
func RenderComparison(w io.Writer, c Comparison) error {
	if !c.Computed {
		_, err := fmt.Fprintln(w, c.Message)
		return err
	}
	if _, err := fmt.Fprintln(w, "Statistical Analysis"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "t-statistic: %s\n", formatStat(c.Test.T)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "p-value: %s\n", formatStat(c.Test.P)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Result: %s\n", c.Message); err != nil {
		return err
	}
	return nil
}

// RenderTimesByChart plots answer time per attempt with one line per chart type.
func RenderTimesByChart(w io.Writer, r Report, width, height int, useColor bool) error {
	series := make([]Series, 0, len(model.ChartTypes))
	for _, ct := range model.ChartTypes {
		series = append(series, Series{Name: string(ct), Values: r.TimesFor(ct)})
	}
	return PlotSeriesShared(w, "Answer Time by Chart Type", series, width, height, useColor)
}

// RenderTrend plots the response time trend with its moving average.
func RenderTrend(w io.Writer, r Report, width, height int, useColor bool) error {
	series := []Series{{Name: "Time (seconds)", Values: r.Times()}}
	if len(r.Rows) >= MovingAverageWindow {
		series = append(series, Series{Name: "Moving Avg (3)", Values: r.MovingAverages()})
	}
	return PlotSeriesShared(w, "Response Time Trend", series, width, height, useColor)
}

func writeTable(w io.Writer, cols []column, rows [][]any) error {
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return fmt.Sprintf("%.4f", v)
	}
}
