package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "jazzquiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, keys := range [][]model.KeyStats{
		{{Key: "C", Correct: 3}, {Key: "Db", Incorrect: 2}},
		{{Key: "C", Correct: 1, Incorrect: 1}, {Key: "F#", Correct: 2}},
	} {
		correct, incorrect := 0, 0
		for _, k := range keys {
			correct += k.Correct
			incorrect += k.Incorrect
		}
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := st.InsertSession(context.Background(), model.SessionStats{
			UUID:       uuid.NewString(),
			StartedAt:  at,
			EndedAt:    at.Add(time.Minute),
			Mode:       "full",
			Questions:  correct + incorrect,
			Correct:    correct,
			Incorrect:  incorrect,
			DurationMs: time.Minute.Milliseconds(),
		}, keys)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
	return st
}

func TestModelRendersTabs(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	if !strings.Contains(view, "Sessions") || !strings.Contains(view, "Accuracy") {
		t.Fatalf("overview missing cards or curves:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view = m.View()
	if !strings.Contains(view, "Db") || !strings.Contains(view, "hard") {
		t.Fatalf("key table missing rows:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "Keys: C") {
		t.Fatalf("key curves should default to the most practiced keys:\n%s", m.View())
	}
}

func TestKeyRowsWeakestFirst(t *testing.T) {
	rows := keyRows([]model.KeyAggregate{
		{Key: "C", Correct: 4},
		{Key: "Db", Correct: 1, Incorrect: 3},
		{Key: "F", Correct: 1, Incorrect: 1},
	})
	if rows[0][0] != "Db" || rows[1][0] != "F" || rows[2][0] != "C" {
		t.Fatalf("unexpected order: %v", rows)
	}
	if rows[0][1] != "hard" || rows[0][2] != "25.0%" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestKeySelection(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.activeTab = tabKeyCurves
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.keyInputMode {
		t.Fatalf("enter should open the key modal")
	}

	m.keyInput.SetValue("Db, H")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.keyInputMode || m.keyInputError == "" {
		t.Fatalf("unknown key should keep the modal open with an error")
	}

	m.keyInput.SetValue("Db F# Db")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.keyInputMode || strings.Join(m.keySelection, ",") != "Db,F#" || !m.keySelectionCustom {
		t.Fatalf("unexpected selection %v", m.keySelection)
	}
	if _, ok := m.keyPerSession[1]["Db"]; !ok {
		t.Fatalf("per-session stats not loaded: %v", m.keyPerSession)
	}
}

func TestParseFilter(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 5})
	m.filterInputs[0].SetValue("guide-tones")
	m.filterInputs[1].SetValue("2026-03-01")
	m.filterInputs[2].SetValue("3")
	m.filterInputs[3].SetValue("2")
	cfg, err := m.parseFilter()
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Mode != "guide-tones" || cfg.Since == nil || cfg.Last != 3 || cfg.CurveWindow != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	m.filterInputs[0].SetValue("karaoke")
	if _, err := m.parseFilter(); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	m.filterInputs[0].SetValue("")
	m.filterInputs[3].SetValue("0")
	if _, err := m.parseFilter(); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct{ in, next, prev int }{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, c := range cases {
		if got := nextCurveWindow(c.in); got != c.next {
			t.Fatalf("next(%d) = %d, want %d", c.in, got, c.next)
		}
		if got := prevCurveWindow(c.in); got != c.prev {
			t.Fatalf("prev(%d) = %d, want %d", c.in, got, c.prev)
		}
	}
}
