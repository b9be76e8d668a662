package dataset

import (
	"fmt"

	"github.com/avelinek/hitset/internal/shared"
)

const (
	// DefaultHitThreshold is the popularity cutoff above which a track counts as a hit.
	DefaultHitThreshold = 87

	popularityColumn = "popularity"
	hitColumn        = "is_hit"
)

// LabelReport summarizes the hit distribution produced by LabelHits.
type LabelReport struct {
	Threshold int
	Hits      int
	NonHits   int
}

// LabelHits adds (or overwrites) the is_hit column on every row:
// 1 when popularity strictly exceeds threshold, 0 otherwise. A popularity
// equal to the threshold is not a hit. No rows are added or removed.
//
// Returns an error wrapping [shared.ErrMissingColumn] when the popularity
// column is absent.
func LabelHits(t *Table, threshold int) (LabelReport, error) {
	report := LabelReport{Threshold: threshold}

	if !t.HasColumn(popularityColumn) {
		return report, fmt.Errorf("%w: %s", shared.ErrMissingColumn, popularityColumn)
	}

	labels := make([]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		popularity, err := t.Int(i, popularityColumn)
		if err != nil {
			return report, err
		}
		if popularity > threshold {
			labels[i] = "1"
			report.Hits++
		} else {
			labels[i] = "0"
			report.NonHits++
		}
	}

	if err := t.SetColumn(hitColumn, labels); err != nil {
		return report, err
	}

	return report, nil
}
