package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/model"
)

const (
	defaultPNGWidth  = 800
	defaultPNGHeight = 500
)

// WritePNG renders spec as a PNG image. Non-positive sizes use defaults.
func WritePNG(w io.Writer, spec Spec, width, height int) error {
	if len(spec.Segments) == 0 {
		return fmt.Errorf("failed to write chart image: %w", dataset.ErrEmptyDataset)
	}
	if width <= 0 {
		width = defaultPNGWidth
	}
	if height <= 0 {
		height = defaultPNGHeight
	}
	values := make([]gochart.Value, 0, len(spec.Segments))
	for _, seg := range spec.Segments {
		values = append(values, gochart.Value{Label: seg.Label, Value: seg.Value})
	}

	var err error
	if spec.Kind == model.ChartPie {
		pie := gochart.PieChart{
			Title:  spec.Title,
			Width:  width,
			Height: height,
			Values: values,
		}
		err = pie.Render(gochart.PNG, w)
	} else {
		barWidth := width / (2*len(values) + 1)
		if barWidth > 120 {
			barWidth = 120
		}
		bar := gochart.BarChart{
			Title:      spec.Title,
			Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
			Width:      width,
			Height:     height,
			BarWidth:   barWidth,
			BarSpacing: barWidth,
			YAxis: gochart.YAxis{
				Name:  spec.YLabel,
				Range: &gochart.ContinuousRange{Min: 0, Max: spec.Max() * 1.1},
			},
			Bars: values,
		}
		err = bar.Render(gochart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("failed to write chart image: %w", err)
	}
	return nil
}
