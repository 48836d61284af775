package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/scoring"
)

// SelectWeakKeys returns the lowest-accuracy keys with more than minAttempts
// answers, weakest first. A non-positive top returns every eligible key.
func SelectWeakKeys(aggs []model.KeyAggregate, top, minAttempts int) []string {
	candidates := make([]model.KeyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		if total == 0 || total <= minAttempts {
			continue
		}
		candidates = append(candidates, agg)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Key < candidates[j].Key
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].Key)
	}
	return out
}

func accuracy(agg model.KeyAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// RenderWeakKeys prints the lifetime weak-key ranking from the profile.
func RenderWeakKeys(w io.Writer, rows []scoring.KeyAccuracy) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No keys with enough attempts yet.")
		return err
	}
	headers := []string{"#", "Key", "Accuracy", "Correct", "Attempts"}
	tableRows := make([][]string, 0, len(rows))
	for i, r := range rows {
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", i+1),
			r.Key,
			fmt.Sprintf("%.1f%%", r.Accuracy()*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Attempts),
		})
	}
	for _, line := range formatTable(headers, tableRows, map[int]bool{0: true, 2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
