package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/generator"
	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

func newTestModel(t *testing.T, cfg model.Config, settings generator.Settings) *Model {
	t.Helper()
	m := NewModel(cfg, settings, nil, generator.NewWithSeed(1), t.TempDir())
	return m
}

func typeAndEnter(m *Model, text string) {
	m.input.SetValue(text)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func currentQuestion(t *testing.T, m *Model) quiz.Question {
	t.Helper()
	q, ok := m.state.Current()
	if !ok {
		t.Fatalf("no active question")
	}
	return q
}

func TestFullProgressionCorrectFlow(t *testing.T) {
	settings := generator.Settings{Count: 2, Mode: quiz.FullProgression}
	m := newTestModel(t, model.Config{}, settings)

	q := currentQuestion(t, m)
	for i, want := range q.ExpectedAnswers {
		if m.state.Submitted {
			t.Fatalf("submitted before unit %d", i)
		}
		typeAndEnter(m, strings.Join(theory.NoteNames(want), " "))
	}
	if !m.state.Submitted || m.last == nil || !m.last.Correct {
		t.Fatalf("expected a correct submission, got %+v", m.last)
	}
	if m.sessionXP != 30 || m.profile.Level.TotalXP != 30 {
		t.Fatalf("expected 30 XP, got session %d total %d", m.sessionXP, m.profile.Level.TotalXP)
	}
	if m.keyStats[q.Cadence.Key.Name].Correct != 1 {
		t.Fatalf("key stats not updated: %+v", m.keyStats)
	}

	// Enter advances to the second question.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Index != 1 || m.state.Submitted || m.unit != 0 {
		t.Fatalf("expected fresh second question, got index %d unit %d", m.state.Index, m.unit)
	}

	// Skipping the last question finishes the session.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if !m.finished {
		t.Fatalf("expected session to finish")
	}
	correct, total, _ := m.state.Summary()
	if correct != 1 || total != 2 {
		t.Fatalf("unexpected summary %d/%d", correct, total)
	}
	if m.profile.Streak.Current != 1 {
		t.Fatalf("expected streak to start, got %+v", m.profile.Streak)
	}
	if !strings.Contains(m.View(), "Session complete") {
		t.Fatalf("expected summary view")
	}

	// Enter starts a new session.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.finished || m.state.Index != 0 || len(m.state.Results) != 0 {
		t.Fatalf("expected a new session")
	}
}

func TestInvalidNoteKeepsUnit(t *testing.T) {
	m := newTestModel(t, model.Config{}, generator.Settings{Count: 1, Mode: quiz.FullProgression})
	typeAndEnter(m, "D H A")
	if m.unit != 0 || m.feedback == "" {
		t.Fatalf("invalid input should be rejected with feedback, unit %d", m.unit)
	}
	if m.state.Submitted {
		t.Fatalf("invalid input must not submit")
	}
}

func TestHintReducesCredit(t *testing.T) {
	m := newTestModel(t, model.Config{}, generator.Settings{Count: 1, Mode: quiz.IsolatedChord, Position: 0})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.hint == "" || m.state.HintsUsed != 1 {
		t.Fatalf("expected a hint, got %q (%d)", m.hint, m.state.HintsUsed)
	}
	q := currentQuestion(t, m)
	typeAndEnter(m, strings.Join(theory.NoteNames(q.ExpectedAnswers[0]), " "))
	if !m.last.Correct || m.last.Credit != 0.75 {
		t.Fatalf("expected 0.75 credit, got %+v", m.last)
	}
	if m.hintsUsed != 1 {
		t.Fatalf("session hint count not recorded")
	}
}

func TestAuralChoiceByNumber(t *testing.T) {
	settings := generator.Settings{Count: 1, Mode: quiz.AuralIdentify, Types: []cadence.Type{cadence.Backdoor}}
	m := newTestModel(t, model.Config{}, settings)
	q := currentQuestion(t, m)
	choice := 0
	for i, c := range q.CandidateTypes {
		if c == cadence.Backdoor {
			choice = i + 1
		}
	}
	typeAndEnter(m, "9")
	if m.state.Submitted {
		t.Fatalf("out of range choice must not submit")
	}
	typeAndEnter(m, string(rune('0'+choice)))
	if !m.state.Submitted || !m.last.Correct {
		t.Fatalf("expected correct aural answer, got %+v", m.last)
	}
}

func TestParseCadenceChoiceRestrictsToCandidates(t *testing.T) {
	candidates := []cadence.Type{cadence.Major, cadence.Minor}
	if _, err := parseCadenceChoice("bird", candidates); err == nil || !strings.Contains(err.Error(), "choose from major, minor") {
		t.Fatalf("expected choose-from error, got %v", err)
	}
	got, err := parseCadenceChoice("Minor", candidates)
	if err != nil || got != cadence.Minor {
		t.Fatalf("expected minor, got %v (%v)", got, err)
	}
	if _, err := parseCadenceChoice("nonsense", candidates); err == nil {
		t.Fatalf("expected unknown cadence error")
	}
}

func TestAuralNameOutsideCandidatesKeepsUnit(t *testing.T) {
	settings := generator.Settings{Count: 1, Mode: quiz.AuralIdentify, Types: []cadence.Type{cadence.Major}, Candidates: []cadence.Type{cadence.Major, cadence.Minor}}
	m := newTestModel(t, model.Config{}, settings)
	typeAndEnter(m, "bird")
	if m.state.Submitted || m.unit != 0 || !strings.HasPrefix(m.feedback, "choose from") {
		t.Fatalf("name outside the candidates must be rejected, feedback %q", m.feedback)
	}
	typeAndEnter(m, "major")
	if !m.state.Submitted || !m.last.Correct {
		t.Fatalf("expected correct aural answer, got %+v", m.last)
	}
}

func TestChartShowsNumerals(t *testing.T) {
	m := newTestModel(t, model.Config{}, generator.Settings{Count: 1, Mode: quiz.FullProgression, Types: []cadence.Type{cadence.Minor}})
	q := currentQuestion(t, m)
	chart := m.renderChart(q)
	for i, numeral := range []string{"iiø", "V", "i"} {
		label := q.Cadence.Chords[i].Symbol() + " (" + numeral + ")"
		if !strings.Contains(chart, label) {
			t.Fatalf("chart %q missing %q", chart, label)
		}
	}
}

func TestChordIdentificationFlow(t *testing.T) {
	m := newTestModel(t, model.Config{}, generator.Settings{Count: 1, Mode: quiz.ChordIdentification})
	q := currentQuestion(t, m)
	for _, c := range q.ExpectedChords {
		typeAndEnter(m, c.Root+c.Symbol)
	}
	if !m.state.Submitted || !m.last.Correct {
		t.Fatalf("expected correct identification, got %+v", m.last)
	}
}

func TestSpeedRoundTimesOut(t *testing.T) {
	start := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	cfg := model.Config{SpeedRoundSeconds: 5}
	m := NewModel(cfg, generator.Settings{Count: 1, Mode: quiz.SpeedRound}, nil, generator.NewWithSeed(2), "")
	m.now = func() time.Time { return start }
	m.beginQuestion()
	if !m.countdown.Active() {
		t.Fatalf("expected countdown")
	}
	if m.Init() == nil {
		t.Fatalf("expected init command with ticking countdown")
	}

	_, cmd := m.Update(tickMsg{id: m.tickID, at: start.Add(2 * time.Second)})
	if m.state.Submitted || cmd == nil {
		t.Fatalf("countdown should keep ticking")
	}
	stale := m.tickID - 1
	m.Update(tickMsg{id: stale, at: start.Add(time.Minute)})
	if m.state.Submitted {
		t.Fatalf("stale tick must be ignored")
	}

	m.notes = [][]theory.Note{{theory.MustParseNote("C")}}
	m.Update(tickMsg{id: m.tickID, at: start.Add(6 * time.Second)})
	if !m.state.Submitted || m.last.Correct {
		t.Fatalf("expected forced incorrect submission, got %+v", m.last)
	}
	if !strings.Contains(m.feedback, "Time is up.") {
		t.Fatalf("expected timeout feedback, got %q", m.feedback)
	}
}

func TestExportCadenceWritesFile(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(model.Config{}, generator.Settings{Count: 1, Mode: quiz.AuralIdentify}, nil, generator.NewWithSeed(4), dir)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if !strings.HasPrefix(m.feedback, "Exported ") {
		t.Fatalf("expected export feedback, got %q", m.feedback)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".mid") {
		t.Fatalf("expected one MIDI file, got %v (%v)", entries, err)
	}
}
