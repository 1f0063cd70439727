// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/chartab/internal/model"
)

// MovingAverageWindow is the number of trials in the trend line average.
const MovingAverageWindow = 3

// TrailingMean computes the mean of each value and the window-1 values
// before it. Positions without a full window are NaN.
func TrailingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// GroupSummary describes response times for one chart type. All fields
// are zero for an empty group.
type GroupSummary struct {
	ChartType model.ChartType
	Count     int
	Mean      float64
	Min       float64
	Max       float64
}

// Summarize computes count, mean, min and max for values.
func Summarize(chartType model.ChartType, values []float64) GroupSummary {
	g := GroupSummary{ChartType: chartType, Count: len(values)}
	if len(values) == 0 {
		return g
	}
	g.Mean = stat.Mean(values, nil)
	g.Min = floats.Min(values)
	g.Max = floats.Max(values)
	return g
}

// SplitByChart partitions response times by the parallel chart type
// sequence. Extra chart types (an unanswered trial) are ignored.
func SplitByChart(times []float64, types []model.ChartType) map[model.ChartType][]float64 {
	out := map[model.ChartType][]float64{}
	for i, t := range times {
		if i >= len(types) {
			break
		}
		out[types[i]] = append(out[types[i]], t)
	}
	return out
}

// BoxSummary is the five-number summary behind a box plot.
type BoxSummary struct {
	ChartType model.ChartType
	Count     int
	Min       float64
	Q1        float64
	Median    float64
	Q3        float64
	Max       float64
}

// Box computes the five-number summary of values.
func Box(chartType model.ChartType, values []float64) BoxSummary {
	b := BoxSummary{ChartType: chartType, Count: len(values)}
	if len(values) == 0 {
		return b
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	b.Min = sorted[0]
	b.Max = sorted[len(sorted)-1]
	b.Q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	b.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	b.Q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return b
}
