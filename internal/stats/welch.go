package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Thresholds for the bar-versus-pie comparison. The test is a rough
// signal for a handful of manual trials, not a rigorous analysis.
const (
	MinSamplesPerGroup = 3
	SignificanceLevel  = 0.05
)

// Comparison messages.
const (
	MsgInsufficient   = "Need at least 3 samples of each chart type for statistical analysis."
	MsgSignificant    = "There is a statistically significant difference between the chart types."
	MsgNotSignificant = "No statistically significant difference detected yet."
	MsgDegenerate     = "No difference detected: both groups have zero variance and equal means."
)

// TTest is the outcome of Welch's unequal-variance t-test.
type TTest struct {
	T          float64
	DF         float64
	P          float64
	Degenerate bool
}

// WelchTTest runs a two-sided Welch t-test. Both samples need at least two
// values. With zero standard error the result is degenerate (NaN) when
// the means agree and infinitely significant when they differ.
func WelchTTest(a, b []float64) TTest {
	if len(a) < 2 || len(b) < 2 {
		return TTest{T: math.NaN(), DF: math.NaN(), P: math.NaN(), Degenerate: true}
	}
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	na := float64(len(a))
	nb := float64(len(b))
	seA := varA / na
	seB := varB / nb
	se := math.Sqrt(seA + seB)
	diff := meanA - meanB

	if se == 0 {
		if diff == 0 {
			return TTest{T: math.NaN(), DF: math.NaN(), P: math.NaN(), Degenerate: true}
		}
		return TTest{T: math.Copysign(math.Inf(1), diff), DF: na + nb - 2, P: 0}
	}

	t := diff / se
	df := (seA + seB) * (seA + seB) / (seA*seA/(na-1) + seB*seB/(nb-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return TTest{T: t, DF: df, P: p}
}

// Comparison is the readout of the bar-versus-pie test.
type Comparison struct {
	Computed    bool
	Significant bool
	Test        TTest
	Message     string
}

// Compare tests bar against pie response times once both groups have
// enough samples.
func Compare(bar, pie []float64) Comparison {
	if len(bar) < MinSamplesPerGroup || len(pie) < MinSamplesPerGroup {
		return Comparison{Message: MsgInsufficient}
	}
	res := WelchTTest(bar, pie)
	c := Comparison{Computed: true, Test: res}
	switch {
	case res.Degenerate:
		c.Message = MsgDegenerate
	case res.P < SignificanceLevel:
		c.Significant = true
		c.Message = MsgSignificant
	default:
		c.Message = MsgNotSignificant
	}
	return c
}
