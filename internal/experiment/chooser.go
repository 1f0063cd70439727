// Package experiment runs the bar-versus-pie timing experiment.
package experiment

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/chartab/internal/model"
)

// Chooser picks the chart type for the next trial.
type Chooser interface {
	Choose() model.ChartType
}

// RandomChooser picks bar or pie with equal probability.
type RandomChooser struct {
	rnd *rand.Rand
}

// NewRandomChooser returns a chooser seeded with seed, or with the current
// time when seed is 0.
func NewRandomChooser(seed int64) *RandomChooser {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomChooser{rnd: rand.New(rand.NewSource(seed))}
}

// Choose implements Chooser.
func (c *RandomChooser) Choose() model.ChartType {
	return model.ChartTypes[c.rnd.Intn(len(model.ChartTypes))]
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func() model.ChartType

// Choose implements Chooser.
func (f ChooserFunc) Choose() model.ChartType {
	return f()
}
