package stats

import (
	"math"
	"testing"
)

func TestWelchSeparatedGroups(t *testing.T) {
	bar := []float64{1.0, 1.1, 0.9}
	pie := []float64{3.0, 3.1, 2.9}
	c := Compare(bar, pie)
	if !c.Computed {
		t.Fatalf("expected the test to run")
	}
	if !(c.Test.P < 0.05) {
		t.Fatalf("expected p < 0.05, got %v", c.Test.P)
	}
	if !c.Significant || c.Message != MsgSignificant {
		t.Fatalf("expected significant result, got %+v", c)
	}
	if c.Test.T >= 0 {
		t.Fatalf("expected negative t for faster bar group, got %v", c.Test.T)
	}
	if math.Abs(c.Test.DF-4) > 1e-9 {
		t.Fatalf("expected 4 degrees of freedom for equal variances, got %v", c.Test.DF)
	}
}

func TestWelchIdenticalConstantGroups(t *testing.T) {
	same := []float64{1.0, 1.0, 1.0}
	c := Compare(same, same)
	if !c.Computed || c.Significant {
		t.Fatalf("expected computed, non-significant result, got %+v", c)
	}
	if !c.Test.Degenerate || !math.IsNaN(c.Test.T) || !math.IsNaN(c.Test.P) {
		t.Fatalf("expected degenerate NaN result, got %+v", c.Test)
	}
	if c.Message != MsgDegenerate {
		t.Fatalf("unexpected message %q", c.Message)
	}
}

func TestWelchConstantGroupsWithDifferentMeans(t *testing.T) {
	res := WelchTTest([]float64{1, 1, 1}, []float64{2, 2, 2})
	if !math.IsInf(res.T, -1) || res.P != 0 || res.Degenerate {
		t.Fatalf("expected -Inf/0 result, got %+v", res)
	}
}

func TestWelchOverlappingGroups(t *testing.T) {
	c := Compare([]float64{1, 3, 2, 4}, []float64{2, 3, 1, 4})
	if !c.Computed || c.Significant || c.Message != MsgNotSignificant {
		t.Fatalf("expected no significant difference, got %+v", c)
	}
	if c.Test.P <= 0.05 || c.Test.P > 1 {
		t.Fatalf("unexpected p-value %v", c.Test.P)
	}
}

func TestCompareInsufficientData(t *testing.T) {
	c := Compare([]float64{1, 2, 3}, []float64{1, 2})
	if c.Computed || c.Message != MsgInsufficient {
		t.Fatalf("expected insufficient data, got %+v", c)
	}
	if c := Compare(nil, nil); c.Computed {
		t.Fatalf("expected insufficient data for empty groups")
	}
}
