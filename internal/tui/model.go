// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/generator"
	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/playback"
	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/scoring"
	"github.com/verte-zerg/jazzquiz/internal/store"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

type tickMsg struct {
	id int
	at time.Time
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	config    model.Config
	settings  generator.Settings
	store     *store.Store
	gen       *generator.Generator
	exportDir string
	now       func() time.Time

	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	sessionID string
	startedAt time.Time
	state     quiz.State
	finished  bool

	// Answers collected for the active question.
	unit   int
	notes  [][]theory.Note
	chords []quiz.ChordIdentity
	aural  *cadence.Type

	hint      string
	feedback  string
	last      *quiz.Result
	countdown quiz.Countdown
	tickID    int

	hintsUsed int
	sessionXP int
	keyStats  map[string]*model.KeyStats
	profile   scoring.Profile
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	answeredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	hintStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#69B1FF"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a quiz TUI model. A nil store disables persistence.
func NewModel(cfg model.Config, settings generator.Settings, st *store.Store, gen *generator.Generator, exportDir string) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "D F A C"
	input.CharLimit = 64
	input.Focus()

	m := &Model{
		config:    cfg,
		settings:  settings,
		store:     st,
		gen:       gen,
		exportDir: exportDir,
		now:       time.Now,
		keys:      defaultKeyMap,
		help:      help.New(),
		input:     input,
	}
	m.loadProfile()
	m.startSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if msg.id != m.tickID || m.finished || m.state.Submitted {
			return m, nil
		}
		if m.countdown.Expired(msg.at) {
			m.feedback = "Time is up."
			m.submit()
			return m, nil
		}
		return m, m.tickCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.finishSession()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Hint):
			m.requestHint()
			return m, nil
		case key.Matches(msg, m.keys.Export):
			m.exportCadence()
			return m, nil
		case key.Matches(msg, m.keys.Skip):
			if m.finished {
				return m, nil
			}
			m.submit()
			return m, m.advance()
		case key.Matches(msg, m.keys.Submit):
			return m, m.handleEnter()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) tickCmd() tea.Cmd {
	if !m.countdown.Active() || m.finished {
		return nil
	}
	id := m.tickID
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func (m *Model) startSession() {
	m.sessionID = uuid.NewString()
	m.startedAt = m.now()
	m.state = quiz.NewState(m.gen.Questions(m.settings))
	m.finished = false
	m.hintsUsed = 0
	m.sessionXP = 0
	m.keyStats = map[string]*model.KeyStats{}
	m.feedback = ""
	m.beginQuestion()
}

func (m *Model) beginQuestion() {
	m.unit = 0
	m.notes = nil
	m.chords = nil
	m.aural = nil
	m.hint = ""
	m.last = nil
	m.input.Reset()
	m.tickID++
	m.countdown = quiz.Countdown{}
	if m.settings.Mode == quiz.SpeedRound {
		m.countdown = quiz.NewCountdown(m.config.SpeedRoundSeconds, m.now())
	}
}

func (m *Model) handleEnter() tea.Cmd {
	if m.finished {
		m.startSession()
		return m.tickCmd()
	}
	if m.state.Submitted {
		return m.advance()
	}
	m.acceptUnit(m.input.Value())
	return nil
}

func (m *Model) advance() tea.Cmd {
	m.state = quiz.Advance(m.state)
	if m.state.Done() {
		m.finishSession()
		return nil
	}
	m.feedback = ""
	m.beginQuestion()
	return m.tickCmd()
}

// acceptUnit parses one answer unit and submits once every unit is in.
func (m *Model) acceptUnit(text string) {
	q, ok := m.state.Current()
	if !ok {
		return
	}
	switch q.Mode {
	case quiz.AuralIdentify:
		t, err := parseCadenceChoice(text, q.CandidateTypes)
		if err != nil {
			m.feedback = err.Error()
			return
		}
		m.aural = &t
		m.unit++
	case quiz.ChordIdentification:
		id, err := quiz.ParseChordIdentity(text)
		if err != nil {
			m.feedback = err.Error()
			return
		}
		m.chords = append(m.chords, id)
		m.unit++
	default:
		notes, err := quiz.ParseNotes(text)
		if err != nil {
			m.feedback = err.Error()
			return
		}
		m.notes = append(m.notes, notes)
		m.unit++
	}
	m.feedback = ""
	m.input.Reset()
	if m.unit >= q.Units() {
		m.submit()
	}
}

func parseCadenceChoice(text string, candidates []cadence.Type) (cadence.Type, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(candidates) {
			return 0, fmt.Errorf("choose 1-%d", len(candidates))
		}
		return candidates[n-1], nil
	}
	t, ok := cadence.ParseType(text)
	if !ok {
		return 0, fmt.Errorf("unknown cadence %q", text)
	}
	for _, c := range candidates {
		if c == t {
			return t, nil
		}
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.String()
	}
	return 0, fmt.Errorf("choose from %s", strings.Join(names, ", "))
}

func (m *Model) submit() {
	q, ok := m.state.Current()
	if !ok {
		return
	}
	state, res, ok := quiz.Submit(m.state, quiz.Answer{Notes: m.notes, CadenceType: m.aural, Chords: m.chords})
	if !ok {
		return
	}
	m.state = state
	m.last = &res
	m.hintsUsed += state.HintsUsed

	bonus := 0.0
	if q.Mode == quiz.SmoothVoicing {
		bonus = res.Smoothness
	}
	before := m.profile.Level.TotalXP
	m.profile = scoring.ApplyResult(m.profile, scoring.Outcome{
		Key:     q.Cadence.Key.Name,
		Correct: res.Correct,
		Credit:  res.Credit,
		Units:   q.Units(),
		Bonus:   bonus,
	})
	earned := m.profile.Level.TotalXP - before
	m.sessionXP += earned

	entry, ok := m.keyStats[q.Cadence.Key.Name]
	if !ok {
		entry = &model.KeyStats{Key: q.Cadence.Key.Name}
		m.keyStats[q.Cadence.Key.Name] = entry
	}
	prefix := ""
	if m.feedback != "" {
		prefix = m.feedback + " "
	}
	if res.Correct {
		entry.Correct++
		m.feedback = prefix + correctStyle.Render(fmt.Sprintf("Correct! +%d XP", earned))
	} else {
		entry.Incorrect++
		m.feedback = prefix + incorrectStyle.Render("Incorrect. "+expectedText(q))
	}
	if q.Mode == quiz.SmoothVoicing && res.Correct {
		m.feedback += fmt.Sprintf(" Voice movement: %d semitones.", res.Movement)
	}
}

func expectedText(q quiz.Question) string {
	switch q.Mode {
	case quiz.AuralIdentify:
		return "It was a " + q.Cadence.Type.Title() + "."
	case quiz.ChordIdentification:
		parts := make([]string, len(q.ExpectedChords))
		for i, c := range q.ExpectedChords {
			parts[i] = c.Root + c.Symbol
		}
		return "Expected " + strings.Join(parts, " ") + "."
	default:
		parts := make([]string, len(q.ExpectedAnswers))
		for i, notes := range q.ExpectedAnswers {
			parts[i] = strings.Join(theory.NoteNames(notes), " ")
			if parts[i] == "" {
				parts[i] = "(none)"
			}
		}
		return "Expected " + strings.Join(parts, " | ") + "."
	}
}

func (m *Model) requestHint() {
	if m.finished || m.state.Submitted {
		return
	}
	q, ok := m.state.Current()
	if !ok {
		return
	}
	idx := m.unit
	if idx >= q.Units() {
		idx = q.Units() - 1
	}
	state, text, ok := quiz.RequestHint(m.state, idx)
	if !ok {
		m.feedback = "No more hints."
		return
	}
	m.state = state
	m.hint = text
}

func (m *Model) exportCadence() {
	q, ok := m.state.Current()
	if !ok {
		return
	}
	if m.exportDir == "" {
		m.feedback = "MIDI export is disabled."
		return
	}
	name := fmt.Sprintf("%s-%s-%s.mid", q.Cadence.Type, q.Cadence.Key.Name, q.ID[:8])
	path := filepath.Join(m.exportDir, name)
	if err := playback.ExportCadences(path, []cadence.Cadence{q.Cadence}, playback.DefaultBPM); err != nil {
		logErrf("failed to export cadence: %v\n", err)
		m.feedback = "Export failed."
		return
	}
	m.feedback = "Exported " + path
}

func (m *Model) loadProfile() {
	if m.store == nil {
		return
	}
	p, err := m.store.LoadProfile(context.Background())
	if err != nil {
		logErrf("failed to load profile: %v\n", err)
		return
	}
	m.profile = p
}

// finishSession records the streak and persists answered questions.
func (m *Model) finishSession() {
	if m.finished {
		return
	}
	m.finished = true
	m.countdown = quiz.Countdown{}
	correct, total, _ := m.state.Summary()
	if total == 0 {
		return
	}
	endedAt := m.now()
	m.profile.Streak = m.profile.Streak.Record(endedAt, correct > 0)
	if m.store == nil {
		return
	}

	typeNames := make([]string, len(m.settings.Types))
	for i, t := range m.settings.Types {
		typeNames[i] = t.String()
	}
	stats := model.SessionStats{
		UUID:         m.sessionID,
		StartedAt:    m.startedAt,
		EndedAt:      endedAt,
		Mode:         m.settings.Mode.String(),
		Difficulty:   m.settings.Difficulty.String(),
		CadenceTypes: strings.Join(typeNames, ","),
		Questions:    total,
		Correct:      correct,
		Incorrect:    total - correct,
		HintsUsed:    m.hintsUsed,
		XPEarned:     m.sessionXP,
		DurationMs:   endedAt.Sub(m.startedAt).Milliseconds(),
	}
	keyStats := make([]model.KeyStats, 0, len(m.keyStats))
	for _, entry := range m.keyStats {
		keyStats = append(keyStats, *entry)
	}
	sort.Slice(keyStats, func(i, j int) bool { return keyStats[i].Key < keyStats[j].Key })

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, stats, keyStats); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	if err := m.store.SaveProfile(ctx, m.profile); err != nil {
		logErrf("failed to save profile: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
