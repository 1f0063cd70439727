// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ChartType identifies which chart a trial presented.
type ChartType string

// Supported chart types.
const (
	ChartBar ChartType = "bar"
	ChartPie ChartType = "pie"
)

// ChartTypes lists every chart type in display order.
var ChartTypes = []ChartType{ChartBar, ChartPie}

// ParseChartType converts user input into a ChartType.
func ParseChartType(s string) (ChartType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ChartBar):
		return ChartBar, nil
	case string(ChartPie):
		return ChartPie, nil
	default:
		return "", fmt.Errorf("unknown chart type %q (expected bar or pie)", s)
	}
}

// Title returns the display label used in tables ("Bar Chart").
func (c ChartType) Title() string {
	switch c {
	case ChartBar:
		return "Bar Chart"
	case ChartPie:
		return "Pie Chart"
	default:
		return string(c)
	}
}

// Config defines experiment settings.
type Config struct {
	DataURL  string
	DataFile string
	Column   string
	Timeout  time.Duration
	Snapshot bool
	Seed     int64
}

// PaymentCounts maps a payment method to the number of rides using it.
type PaymentCounts map[string]int

// Total returns the number of records the counts were built from.
func (c PaymentCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Category is one entry of PaymentCounts in display order.
type Category struct {
	Label string
	Count int
}

// Trial captures one presentation of a chart.
type Trial struct {
	Attempt      int
	ChartType    ChartType
	StartedAt    time.Time
	ResponseTime time.Duration
	Answered     bool
}

// Seconds returns the response time in seconds, or 0 when unanswered.
func (t Trial) Seconds() float64 {
	if !t.Answered {
		return 0
	}
	return t.ResponseTime.Seconds()
}

// Snapshot is a stored copy of a successfully fetched dataset.
type Snapshot struct {
	ID        int64
	Source    string
	FetchedAt time.Time
	Records   []string
}
