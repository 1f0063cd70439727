package stats

import (
	"math"

	"github.com/verte-zerg/chartab/internal/model"
)

// Row is one answered attempt in the tracking table.
type Row struct {
	Attempt   int
	ChartType model.ChartType
	Seconds   float64
	MovingAvg float64 // NaN until MovingAverageWindow answers exist
}

// Report contains precomputed data for the results and analysis views.
type Report struct {
	Rows       []Row
	Groups     []GroupSummary
	Boxes      []BoxSummary
	Comparison Comparison
}

// BuildReport derives every view of the answered trials.
func BuildReport(trials []model.Trial) Report {
	times := make([]float64, 0, len(trials))
	types := make([]model.ChartType, 0, len(trials))
	for _, t := range trials {
		if !t.Answered {
			continue
		}
		times = append(times, t.Seconds())
		types = append(types, t.ChartType)
	}
	return BuildReportFromSeries(times, types)
}

// BuildReportFromSeries builds a report from parallel response-time and
// chart-type sequences. Chart types beyond len(times) are ignored.
func BuildReportFromSeries(times []float64, types []model.ChartType) Report {
	if len(types) > len(times) {
		types = types[:len(times)]
	}
	if len(times) > len(types) {
		times = times[:len(types)]
	}
	avg := TrailingMean(times, MovingAverageWindow)
	rows := make([]Row, len(times))
	for i := range times {
		rows[i] = Row{
			Attempt:   i + 1,
			ChartType: types[i],
			Seconds:   times[i],
			MovingAvg: avg[i],
		}
	}

	groups := SplitByChart(times, types)
	report := Report{Rows: rows}
	for _, ct := range model.ChartTypes {
		report.Groups = append(report.Groups, Summarize(ct, groups[ct]))
		report.Boxes = append(report.Boxes, Box(ct, groups[ct]))
	}
	report.Comparison = Compare(groups[model.ChartBar], groups[model.ChartPie])
	return report
}

// Times returns the response times of all rows.
func (r Report) Times() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Seconds
	}
	return out
}

// MovingAverages returns the trailing averages of all rows.
func (r Report) MovingAverages() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.MovingAvg
	}
	return out
}

// TimesFor returns a series aligned to all rows holding the times of
// chartType and NaN elsewhere.
func (r Report) TimesFor(chartType model.ChartType) []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		if row.ChartType == chartType {
			out[i] = row.Seconds
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Group returns the summary for chartType.
func (r Report) Group(chartType model.ChartType) GroupSummary {
	for _, g := range r.Groups {
		if g.ChartType == chartType {
			return g
		}
	}
	return GroupSummary{ChartType: chartType}
}

// BothGroupsSampled reports whether bar and pie each have an answer.
func (r Report) BothGroupsSampled() bool {
	return r.Group(model.ChartBar).Count > 0 && r.Group(model.ChartPie).Count > 0
}
