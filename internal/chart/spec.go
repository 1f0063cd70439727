// Package chart turns payment counts into chart descriptions and draws them
// in the terminal or as PNG images.
package chart

import (
	"fmt"

	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/model"
)

// Segment is one bar or pie slice.
type Segment struct {
	Label string
	Value float64
}

// Spec is a renderer-independent chart description.
type Spec struct {
	Kind     model.ChartType
	Title    string
	XLabel   string
	YLabel   string
	Segments []Segment
}

// Total sums the segment values.
func (s Spec) Total() float64 {
	var total float64
	for _, seg := range s.Segments {
		total += seg.Value
	}
	return total
}

// Max returns the largest segment value, or 0 for an empty spec.
func (s Spec) Max() float64 {
	var maxVal float64
	for _, seg := range s.Segments {
		if seg.Value > maxVal {
			maxVal = seg.Value
		}
	}
	return maxVal
}

// RenderBar describes counts as a bar chart, one bar per payment method.
func RenderBar(counts model.PaymentCounts) (Spec, error) {
	segments, err := segmentsFor(counts)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return Spec{
		Kind:     model.ChartBar,
		Title:    "Payment Methods (Bar Chart)",
		XLabel:   "Payment Type",
		YLabel:   "Number of Rides",
		Segments: segments,
	}, nil
}

// RenderPie describes counts as a pie chart, one slice per payment method.
func RenderPie(counts model.PaymentCounts) (Spec, error) {
	segments, err := segmentsFor(counts)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return Spec{
		Kind:     model.ChartPie,
		Title:    "Payment Methods (Pie Chart)",
		Segments: segments,
	}, nil
}

// Render dispatches to the renderer for kind.
func Render(kind model.ChartType, counts model.PaymentCounts) (Spec, error) {
	switch kind {
	case model.ChartBar:
		return RenderBar(counts)
	case model.ChartPie:
		return RenderPie(counts)
	default:
		return Spec{}, fmt.Errorf("unknown chart type %q", kind)
	}
}

// Bars builds a bar spec from parallel label and value slices.
func Bars(title string, labels []string, values []float64) Spec {
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}
	segments := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		segments = append(segments, Segment{Label: labels[i], Value: values[i]})
	}
	return Spec{Kind: model.ChartBar, Title: title, Segments: segments}
}

func segmentsFor(counts model.PaymentCounts) ([]Segment, error) {
	if counts.Total() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	sorted := dataset.Sorted(counts)
	segments := make([]Segment, 0, len(sorted))
	for _, c := range sorted {
		if c.Count <= 0 {
			continue
		}
		segments = append(segments, Segment{Label: c.Label, Value: float64(c.Count)})
	}
	return segments, nil
}
