package tui

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

func (m *Model) renderBody() string {
	if m.finished {
		return m.renderSummary()
	}
	q, ok := m.state.Current()
	if !ok {
		return ""
	}
	info := q.Mode.Info()
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s · Question %d/%d", info.Title, m.state.Index+1, len(m.state.Questions))),
		info.Instruction,
		"",
		m.renderChart(q),
	}
	if prompt := m.unitPrompt(q); prompt != "" {
		lines = append(lines, "", prompt)
	}
	if !m.state.Submitted {
		lines = append(lines, m.input.View())
	}
	if m.countdown.Active() && !m.state.Submitted {
		lines = append(lines, fmt.Sprintf("Time left: %ds", int(m.countdown.Remaining(m.now()).Seconds()+0.5)))
	}
	if m.hint != "" {
		lines = append(lines, hintStyle.Render("Hint: "+m.hint))
	}
	if m.feedback != "" {
		lines = append(lines, m.feedback)
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	correct, total, credit := m.state.Summary()
	lines := []string{
		titleStyle.Render("Session complete"),
		fmt.Sprintf("%d/%d correct · %.1f credit · +%d XP", correct, total, credit, m.sessionXP),
		fmt.Sprintf("Level %d · Streak %d (best %d)", m.profile.Level.Level(), m.profile.Streak.Current, m.profile.Streak.Best),
		"",
		footerStyle.Render("enter: new session · esc: quit"),
	}
	return strings.Join(lines, "\n")
}

// renderChart shows the chords of the question. Aural questions list the
// answer choices instead, and identification questions show the notes.
func (m *Model) renderChart(q quiz.Question) string {
	width := 0
	if m.width > 0 {
		width = int(float64(m.width) * 0.70)
	}
	switch q.Mode {
	case quiz.AuralIdentify:
		labels := make([]string, len(q.CandidateTypes))
		for i, t := range q.CandidateTypes {
			labels[i] = fmt.Sprintf("%d) %s", i+1, t.Title())
		}
		hidden := "Press ctrl+e to export the cadence, then listen."
		return hidden + "\n" + wrapChips(buildChips(labels, nil), width)
	case quiz.ChordIdentification:
		labels := make([]string, len(q.ChordsToSpell))
		for i, ch := range q.ChordsToSpell {
			labels[i] = "[" + strings.Join(theory.NoteNames(ch.Tones()), " ") + "]"
		}
		return wrapChips(buildChips(labels, m.unitStates(q)), width)
	}

	labels := q.Cadence.Symbols()
	for i, numeral := range q.Cadence.Numerals() {
		if i < len(labels) {
			labels[i] += " (" + numeral + ")"
		}
	}
	states := make([]chipState, len(labels))
	units := m.unitStates(q)
	for i, idx := range q.ChordIndices {
		if idx < len(states) {
			states[idx] = units[unitIndexFor(q, i)]
		}
	}
	return wrapChips(buildChips(labels, states), width)
}

// unitIndexFor maps a position in ChordIndices to its answer unit.
func unitIndexFor(q quiz.Question, chordPos int) int {
	if q.Units() == 1 {
		return 0
	}
	return chordPos
}

// unitStates returns the display state of each answer unit.
func (m *Model) unitStates(q quiz.Question) []chipState {
	states := make([]chipState, q.Units())
	for i := range states {
		switch {
		case m.state.Submitted && m.last != nil && i < len(m.last.PerUnit) && m.last.PerUnit[i]:
			states[i] = chipCorrect
		case m.state.Submitted:
			states[i] = chipIncorrect
		case i < m.unit:
			states[i] = chipAnswered
		case i == m.unit:
			states[i] = chipActive
		default:
			states[i] = chipPending
		}
	}
	return states
}

func (m *Model) unitPrompt(q quiz.Question) string {
	if m.state.Submitted || m.unit >= q.Units() {
		return ""
	}
	switch q.Mode {
	case quiz.AuralIdentify:
		return "Which cadence? (number or name)"
	case quiz.ChordIdentification:
		return fmt.Sprintf("Name chord %d:", m.unit+1)
	case quiz.CommonTones:
		return fmt.Sprintf("Common tones of %s and %s:", q.ChordsToSpell[0].Symbol(), q.ChordsToSpell[1].Symbol())
	case quiz.ResolutionTargets:
		p := q.ResolutionPairs[q.PairIndex]
		return fmt.Sprintf("The %s (%s) of %s resolves to which note of %s?",
			p.SourceRole.Label, p.SourceNote.Name, q.ChordsToSpell[0].Symbol(), q.ChordsToSpell[1].Symbol())
	case quiz.GuideTones:
		return fmt.Sprintf("3rd and 7th of %s:", q.ChordsToSpell[m.unit].Symbol())
	case quiz.SmoothVoicing:
		return fmt.Sprintf("Voice %s (octaves allowed, e.g. F3 A3 C4 E4):", q.ChordsToSpell[m.unit].Symbol())
	default:
		return fmt.Sprintf("Spell %s:", q.ChordsToSpell[m.unit].Symbol())
	}
}

func (m *Model) renderFooter() string {
	if len(m.state.Questions) == 0 {
		return ""
	}
	lvl := m.profile.Level
	segments := []string{
		fmt.Sprintf("Level %d %.0f%%", lvl.Level(), lvl.Progress()*100),
		fmt.Sprintf("XP %d", lvl.TotalXP),
		fmt.Sprintf("Session +%d", m.sessionXP),
		fmt.Sprintf("Streak %d", m.profile.Streak.Active(m.now())),
	}
	if weakest := m.profile.Stats.WeakestKeys(m.config.WeakMinAttempts, 1); len(weakest) > 0 {
		segments = append(segments, fmt.Sprintf("Weakest %s %.0f%%", weakest[0].Key, weakest[0].Accuracy()*100))
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
