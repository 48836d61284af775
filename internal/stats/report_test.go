package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "jazzquiz.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			UUID:         uuid.NewString(),
			StartedAt:    start,
			EndedAt:      end,
			Mode:         "full",
			Difficulty:   "all",
			CadenceTypes: "major",
			Questions:    3,
			Correct:      2,
			Incorrect:    1,
			XPEarned:     60,
			DurationMs:   end.Sub(start).Milliseconds(),
		}
		keyStats := []model.KeyStats{
			{Key: "C", Correct: 2, Incorrect: 0},
			{Key: "Db", Correct: 0, Incorrect: 1},
		}
		id, err := st.InsertSession(ctx, stats, keyStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Mode:        "full",
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.KeyAggsAll) != 2 || len(report.KeyAggsWindow) != 2 {
		t.Fatalf("expected key aggregates, got %+v / %+v", report.KeyAggsAll, report.KeyAggsWindow)
	}
	if len(report.CurveKeys) != 2 || report.CurveKeys[0] != "C" {
		t.Fatalf("unexpected curve keys: %v", report.CurveKeys)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, cfg, 60); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Learning Curves", "Per-Key (Windowed)", "Per-Key Curves"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Index(out, "Db ") > strings.Index(out, "C  ") {
		t.Fatalf("weakest key should be listed first:\n%s", out)
	}
}
