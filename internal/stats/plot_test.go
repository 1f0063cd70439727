package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestPlotSeriesSharedLayout(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeriesShared(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, 40, 4, false)
	if err != nil {
		t.Fatalf("PlotSeriesShared failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 1 + 2 + 4 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotSeriesSharedSkipsGaps(t *testing.T) {
	nan := math.NaN()
	var buf bytes.Buffer
	err := PlotSeriesShared(&buf, "Shared", []Series{
		{Name: "bar", Values: []float64{2, nan, 4, nan}},
		{Name: "pie", Values: []float64{nan, 6, nan, 8}},
		{Name: "empty", Values: []float64{nan, nan}},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotSeriesShared failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Shared scale") {
		t.Fatalf("expected shared scale note:\n%s", out)
	}
	if !strings.Contains(out, "8.0") || !strings.Contains(out, "2.0") {
		t.Fatalf("expected value axis labels:\n%s", out)
	}
	if !strings.Contains(out, "bar: min=2.00 max=4.00") || !strings.Contains(out, "pie: min=6.00 max=8.00") {
		t.Fatalf("expected per-series range lines:\n%s", out)
	}
	if strings.Contains(out, "empty") {
		t.Fatalf("series without values should be dropped:\n%s", out)
	}
}

func TestResampleSeriesKeepsGaps(t *testing.T) {
	got := resampleSeries([]float64{1, math.NaN(), math.NaN(), math.NaN()}, 2)
	if got[0] != 1 || !math.IsNaN(got[1]) {
		t.Fatalf("unexpected resample %v", got)
	}
}
