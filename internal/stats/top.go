package stats

import (
	"sort"

	"github.com/verte-zerg/jazzquiz/internal/model"
)

// TopKeysByFrequency returns the N most practiced keys.
func TopKeysByFrequency(aggs []model.KeyAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.KeyAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		ti := items[i].Correct + items[i].Incorrect
		tj := items[j].Correct + items[j].Incorrect
		if ti == tj {
			return items[i].Key < items[j].Key
		}
		return ti > tj
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].Key)
	}
	return out
}
