package stats

import (
	"math"
	"testing"
)

func TestFormatTableAlignsByCellType(t *testing.T) {
	cols := []column{{title: "Chart"}, {title: "Mean", prec: 2}, {title: "Count"}}
	rows := [][]any{
		{"bar", 12.5, 12},
		{"pie chart", 8.0, 3},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Chart      Mean Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "bar       12.50    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "pie chart  8.00     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUndefinedValues(t *testing.T) {
	cols := []column{{title: "Attempt"}, {title: "Avg", prec: 2}}
	lines := formatTable(cols, [][]any{{1, math.NaN()}, {2, 10.0}})
	if lines[1] != "      1     -" {
		t.Fatalf("unexpected NaN row: %q", lines[1])
	}
	if lines[2] != "      2 10.00" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableTextColumnKeepsLeftAlignment(t *testing.T) {
	lines := formatTable([]column{{title: "Payment"}}, [][]any{{"cash"}})
	if lines[1] != "cash" {
		t.Fatalf("expected trimmed left-aligned text, got %q", lines[1])
	}
	if formatTable(nil, nil) != nil {
		t.Fatalf("expected nil for no columns")
	}
}
