package quiz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

const (
	// MaxHints is the number of hint levels per question.
	MaxHints = 3
	// HintPenalty multiplies the credit once per hint used.
	HintPenalty = 0.75
)

// Answer is a learner's submission. Only the field matching the question's
// mode is read.
type Answer struct {
	Notes       [][]theory.Note
	CadenceType *cadence.Type
	Chords      []ChordIdentity
}

// Result is the outcome of checking an answer.
type Result struct {
	Correct bool
	Credit  float64
	PerUnit []bool
	// Movement is the total semitone motion between consecutive submitted
	// voicings (SmoothVoicing only).
	Movement int
	// Smoothness is 1 for no motion and falls to 0 at an average of a tritone
	// per voice.
	Smoothness float64
}

// IsCandidate reports whether t is one of the cadence types offered by an
// aural question.
func IsCandidate(q Question, t cadence.Type) bool {
	for _, c := range q.CandidateTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Check scores an answer. It has no side effects.
func Check(q Question, a Answer, hintsUsed int) Result {
	var per []bool
	switch q.Mode {
	case AuralIdentify:
		per = []bool{a.CadenceType != nil && *a.CadenceType == q.Cadence.Type && IsCandidate(q, *a.CadenceType)}
	case ChordIdentification:
		per = make([]bool, len(q.ExpectedChords))
		for i, want := range q.ExpectedChords {
			if i < len(a.Chords) {
				per[i] = a.Chords[i] == want
			}
		}
	default:
		per = make([]bool, len(q.ExpectedAnswers))
		for i, want := range q.ExpectedAnswers {
			if i < len(a.Notes) {
				per[i] = SameNoteNames(want, a.Notes[i])
			}
		}
	}

	res := Result{PerUnit: per, Correct: len(per) > 0}
	for _, ok := range per {
		if !ok {
			res.Correct = false
			break
		}
	}
	if res.Correct {
		res.Credit = Credit(hintsUsed)
	}
	if q.Mode == SmoothVoicing {
		res.Movement, res.Smoothness = voiceLeading(a.Notes)
	}
	return res
}

// Credit returns the credit fraction for a correct answer after hints.
func Credit(hintsUsed int) float64 {
	if hintsUsed < 0 {
		hintsUsed = 0
	}
	if hintsUsed > MaxHints {
		hintsUsed = MaxHints
	}
	return math.Pow(HintPenalty, float64(hintsUsed))
}

// SameNoteNames compares two selections as sets of spelled names. Order and
// duplicates are ignored; enharmonic spellings are different answers.
func SameNoteNames(want, got []theory.Note) bool {
	a := nameSet(want)
	b := nameSet(got)
	if len(a) != len(b) {
		return false
	}
	for name := range a {
		if !b[name] {
			return false
		}
	}
	return true
}

func nameSet(notes []theory.Note) map[string]bool {
	out := make(map[string]bool, len(notes))
	for _, n := range notes {
		out[n.Name] = true
	}
	return out
}

func voiceLeading(voicings [][]theory.Note) (movement int, smoothness float64) {
	pairs := 0
	for i := 0; i+1 < len(voicings); i++ {
		a := sortedMIDI(voicings[i])
		b := sortedMIDI(voicings[i+1])
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		for v := 0; v < n; v++ {
			d := a[v] - b[v]
			if d < 0 {
				d = -d
			}
			movement += d
		}
		pairs += n
	}
	if pairs == 0 {
		return 0, 0
	}
	smoothness = 1 - float64(movement)/float64(pairs)/6
	if smoothness < 0 {
		smoothness = 0
	}
	return movement, smoothness
}

func sortedMIDI(notes []theory.Note) []int {
	out := make([]int, len(notes))
	for i, n := range notes {
		out[i] = n.MIDI
	}
	sort.Ints(out)
	return out
}

// ParseNotes parses a whitespace or comma separated list of note names.
func ParseNotes(s string) ([]theory.Note, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	out := make([]theory.Note, 0, len(fields))
	for _, f := range fields {
		n, err := theory.ParseNote(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseChordIdentity parses a symbol such as "Bbmaj7" or "F#m7b5".
func ParseChordIdentity(s string) (ChordIdentity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ChordIdentity{}, fmt.Errorf("empty chord symbol")
	}
	rootLen := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		rootLen = 2
	}
	root, err := theory.ParseNote(s[:rootLen])
	if err != nil {
		return ChordIdentity{}, fmt.Errorf("invalid chord root in %q: %w", s, err)
	}
	symbol := s[rootLen:]
	if _, ok := theory.ChordTypeBySymbol(symbol); !ok {
		return ChordIdentity{}, fmt.Errorf("unknown chord quality %q", symbol)
	}
	return ChordIdentity{Root: root.Name, Symbol: symbol}, nil
}
