package stats

import (
	"testing"

	"github.com/verte-zerg/jazzquiz/internal/model"
)

func TestTopKeysByFrequency(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Key: "Bb", Correct: 3, Incorrect: 1},
		{Key: "Ab", Correct: 2, Incorrect: 2},
		{Key: "C", Correct: 1, Incorrect: 0},
	}
	top := TopKeysByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(top))
	}
	if top[0] != "Ab" || top[1] != "Bb" {
		t.Fatalf("unexpected order: %v", top)
	}
	if aggs[0].Key != "Bb" {
		t.Fatalf("input reordered")
	}
}
