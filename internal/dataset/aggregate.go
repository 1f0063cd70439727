package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/verte-zerg/chartab/internal/model"
)

// ErrEmptyDataset is returned when there is nothing to aggregate or draw.
var ErrEmptyDataset = errors.New("dataset is empty")

// Aggregate counts records per payment method.
func Aggregate(records []string) (model.PaymentCounts, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to aggregate payments: %w", ErrEmptyDataset)
	}
	counts := make(model.PaymentCounts)
	for _, rec := range records {
		counts[rec]++
	}
	return counts, nil
}

// Mode returns the most common payment method and its count. Ties go to
// the alphabetically first label.
func Mode(counts model.PaymentCounts) (string, int, error) {
	sorted := Sorted(counts)
	if len(sorted) == 0 {
		return "", 0, fmt.Errorf("failed to find most common payment: %w", ErrEmptyDataset)
	}
	return sorted[0].Label, sorted[0].Count, nil
}

// Sorted lists counts by descending count, then label.
func Sorted(counts model.PaymentCounts) []model.Category {
	out := make([]model.Category, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.Category{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}
