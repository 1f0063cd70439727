package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one table column. Float cells are printed with prec
// decimals; NaN prints as "-".
type column struct {
	title string
	prec  int
}

// formatTable lays out rows of string, int and float64 cells. Columns
// holding numbers are right-aligned, text columns left-aligned.
func formatTable(cols []column, rows [][]any) []string {
	if len(cols) == 0 {
		return nil
	}
	cells := make([][]string, len(rows))
	numeric := make([]bool, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i := range cols {
			if i >= len(row) {
				continue
			}
			text, isNum := formatCell(row[i], cols[i].prec)
			if isNum {
				numeric[i] = true
			}
			cells[r][i] = text
			if w := runewidth.StringWidth(text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines = append(lines, joinCells(header, widths, numeric))
	for _, row := range cells {
		lines = append(lines, joinCells(row, widths, numeric))
	}
	return lines
}

func formatCell(v any, prec int) (string, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return "-", true
		}
		return fmt.Sprintf("%.*f", prec, val), true
	case int:
		return fmt.Sprintf("%d", val), true
	case string:
		return val, false
	default:
		return fmt.Sprint(val), false
	}
}

func joinCells(cells []string, widths []int, rightAlign []bool) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if rightAlign[i] {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}
