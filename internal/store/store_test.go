package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "jazzquiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestSession(t *testing.T, st *Store, mode string, at time.Time, keys []model.KeyStats) int64 {
	t.Helper()
	correct, incorrect := 0, 0
	for _, k := range keys {
		correct += k.Correct
		incorrect += k.Incorrect
	}
	id, err := st.InsertSession(context.Background(), model.SessionStats{
		UUID:         uuid.NewString(),
		StartedAt:    at,
		EndedAt:      at.Add(2 * time.Minute),
		Mode:         mode,
		Difficulty:   "all",
		CadenceTypes: "major",
		Questions:    correct + incorrect,
		Correct:      correct,
		Incorrect:    incorrect,
		XPEarned:     correct * 30,
		DurationMs:   (2 * time.Minute).Milliseconds(),
	}, keys)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func TestSessionsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	first := insertTestSession(t, st, "full", base, []model.KeyStats{{Key: "C", Correct: 2}, {Key: "F#", Incorrect: 2}})
	second := insertTestSession(t, st, "guide-tones", base.Add(time.Hour), []model.KeyStats{{Key: "C", Correct: 1, Incorrect: 1}})

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 2 || all[0].SessionID != first || all[1].SessionID != second {
		t.Fatalf("unexpected sessions: %+v", all)
	}
	if all[0].Mode != "full" || all[0].Correct != 2 || all[0].Incorrect != 2 || all[0].XPEarned != 60 {
		t.Fatalf("unexpected first session: %+v", all[0])
	}

	filtered, err := st.ListSessions(ctx, model.StatsConfig{Mode: "guide-tones"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SessionID != second {
		t.Fatalf("unexpected filtered sessions: %+v", filtered)
	}

	since := base.Add(30 * time.Minute)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent session, got %d", len(recent))
	}

	aggs, err := st.ListKeyAggregatesForSessions(ctx, []int64{first, second})
	if err != nil {
		t.Fatalf("aggregate keys: %v", err)
	}
	byKey := map[string]model.KeyAggregate{}
	for _, a := range aggs {
		byKey[a.Key] = a
	}
	if byKey["C"].Correct != 3 || byKey["C"].Incorrect != 1 || byKey["F#"].Incorrect != 2 {
		t.Fatalf("unexpected aggregates: %+v", byKey)
	}

	perSession, err := st.ListKeyStatsForSessions(ctx, []int64{first, second}, []string{"C"})
	if err != nil {
		t.Fatalf("per-session keys: %v", err)
	}
	if perSession[first]["C"].Correct != 2 || perSession[second]["C"].Incorrect != 1 {
		t.Fatalf("unexpected per-session stats: %+v", perSession)
	}
	if _, ok := perSession[first]["F#"]; ok {
		t.Fatalf("unrequested key returned")
	}
}

func TestGetWeakKeysWindow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	insertTestSession(t, st, "full", base, []model.KeyStats{{Key: "Db", Incorrect: 5}})
	insertTestSession(t, st, "full", base.Add(time.Hour), []model.KeyStats{{Key: "C", Correct: 1}})
	insertTestSession(t, st, "speed", base.Add(2*time.Hour), []model.KeyStats{{Key: "E", Incorrect: 1}})

	aggs, err := st.GetWeakKeys(ctx, 1, "full")
	if err != nil {
		t.Fatalf("weak keys: %v", err)
	}
	if len(aggs) != 1 || aggs[0].Key != "C" {
		t.Fatalf("expected only the latest full session, got %+v", aggs)
	}

	aggs, err = st.GetWeakKeys(ctx, 10, "")
	if err != nil {
		t.Fatalf("weak keys: %v", err)
	}
	if len(aggs) != 3 {
		t.Fatalf("expected 3 keys across all modes, got %+v", aggs)
	}

	aggs, err = st.GetWeakKeys(ctx, 0, "")
	if err != nil || aggs != nil {
		t.Fatalf("zero window should return nothing, got %+v %v", aggs, err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	empty, err := st.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load empty profile: %v", err)
	}
	if empty.Level.TotalXP != 0 || empty.Streak.Current != 0 {
		t.Fatalf("expected empty profile, got %+v", empty)
	}

	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	p := scoring.Profile{
		Level: scoring.PlayerLevel{TotalXP: 420},
		Stats: scoring.LifetimeStats{
			Questions: 12,
			Correct:   9,
			PerKey: map[string]scoring.KeyRecord{
				"C":  {Attempts: 8, Correct: 7},
				"Ab": {Attempts: 4, Correct: 2},
			},
		},
		Streak: scoring.Streak{Current: 3, Best: 5, LastDay: day},
	}
	if err := st.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	p.Stats.PerKey = map[string]scoring.KeyRecord{"Ab": {Attempts: 5, Correct: 3}}
	if err := st.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile again: %v", err)
	}

	got, err := st.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if got.Level.TotalXP != 420 || got.Stats.Questions != 12 || got.Stats.Correct != 9 {
		t.Fatalf("unexpected profile totals: %+v", got)
	}
	if got.Streak.Current != 3 || got.Streak.Best != 5 || !got.Streak.LastDay.Equal(day) {
		t.Fatalf("unexpected streak: %+v", got.Streak)
	}
	if len(got.Stats.PerKey) != 1 || got.Stats.PerKey["Ab"].Attempts != 5 {
		t.Fatalf("per-key records not replaced: %+v", got.Stats.PerKey)
	}
}
