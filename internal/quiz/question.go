package quiz

import (
	"github.com/google/uuid"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

// ResolutionPair describes how a guide tone of one chord moves into the next.
type ResolutionPair struct {
	SourceChordIndex int
	TargetChordIndex int
	SourceRole       theory.ToneDescriptor
	SourceNote       theory.Note
	// TargetNote is nil when no guide tone of the target chord is close enough.
	TargetNote *theory.Note
}

// ChordIdentity is the expected answer of a chord identification unit.
type ChordIdentity struct {
	Root   string
	Symbol string
}

// Question is one drill question built from a cadence.
type Question struct {
	ID              string
	Cadence         cadence.Cadence
	Mode            Mode
	ChordsToSpell   []theory.Chord
	ChordIndices    []int
	ExpectedAnswers [][]theory.Note
	ResolutionPairs []ResolutionPair
	ExpectedChords  []ChordIdentity
	CandidateTypes  []cadence.Type
	PairIndex       int
}

// QuestionOptions are the caller's choices for modes that focus on part of a cadence.
type QuestionOptions struct {
	// Position is the chord index for IsolatedChord.
	Position int
	// PairIndex selects the adjacent pair (PairIndex, PairIndex+1).
	PairIndex int
	// Candidates restricts the answers offered in AuralIdentify.
	Candidates []cadence.Type
}

// Units returns the number of independently graded answer units.
func (q Question) Units() int {
	switch q.Mode {
	case AuralIdentify:
		return 1
	case ChordIdentification:
		return len(q.ExpectedChords)
	default:
		return len(q.ExpectedAnswers)
	}
}

// BuildQuestion wraps a cadence into a question for the mode.
func BuildQuestion(c cadence.Cadence, mode Mode, opts QuestionOptions) Question {
	q := Question{
		ID:      uuid.NewString(),
		Cadence: c,
		Mode:    mode,
	}
	switch mode {
	case IsolatedChord:
		pos := opts.Position
		if pos < 0 {
			pos = 0
		}
		if pos >= len(c.Chords) {
			pos = len(c.Chords) - 1
		}
		q.setSpelling([]int{pos}, fullTones)
	case GuideTones:
		q.setSpelling(allIndices(c), guideTones)
	case CommonTones:
		q.PairIndex = pairIndex(c, opts.PairIndex)
		a, b := c.Chords[q.PairIndex], c.Chords[q.PairIndex+1]
		q.ChordsToSpell = []theory.Chord{a, b}
		q.ChordIndices = []int{q.PairIndex, q.PairIndex + 1}
		q.ExpectedAnswers = [][]theory.Note{CommonToneNotes(a, b)}
	case ResolutionTargets:
		q.PairIndex = pairIndex(c, opts.PairIndex)
		for i := 0; i+1 < len(c.Chords); i++ {
			q.ResolutionPairs = append(q.ResolutionPairs, resolvePair(c, i))
		}
		selected := q.ResolutionPairs[q.PairIndex]
		q.ChordsToSpell = []theory.Chord{c.Chords[q.PairIndex], c.Chords[q.PairIndex+1]}
		q.ChordIndices = []int{q.PairIndex, q.PairIndex + 1}
		expected := []theory.Note{}
		if selected.TargetNote != nil {
			expected = append(expected, *selected.TargetNote)
		}
		q.ExpectedAnswers = [][]theory.Note{expected}
	case AuralIdentify:
		q.CandidateTypes = candidateTypes(c.Type, opts.Candidates)
	case ChordIdentification:
		q.ChordsToSpell = append([]theory.Chord(nil), c.Chords...)
		q.ChordIndices = allIndices(c)
		for _, ch := range c.Chords {
			q.ExpectedChords = append(q.ExpectedChords, ChordIdentity{Root: ch.Root.Name, Symbol: ch.Type.Symbol})
		}
	default:
		// FullProgression, SpeedRound and SmoothVoicing spell every chord.
		q.setSpelling(allIndices(c), fullTones)
	}
	return q
}

// CommonToneNotes returns the notes of a whose names also appear in b.
func CommonToneNotes(a, b theory.Chord) []theory.Note {
	inB := map[string]bool{}
	for _, n := range b.Tones() {
		inB[n.Name] = true
	}
	seen := map[string]bool{}
	out := []theory.Note{}
	for _, n := range a.Tones() {
		if inB[n.Name] && !seen[n.Name] {
			seen[n.Name] = true
			out = append(out, n)
		}
	}
	return out
}

func (q *Question) setSpelling(indices []int, tones func(theory.Chord) []theory.Note) {
	q.ChordIndices = indices
	q.ChordsToSpell = make([]theory.Chord, len(indices))
	q.ExpectedAnswers = make([][]theory.Note, len(indices))
	for i, idx := range indices {
		ch := q.Cadence.Chords[idx]
		q.ChordsToSpell[i] = ch
		q.ExpectedAnswers[i] = tones(ch)
	}
}

func fullTones(c theory.Chord) []theory.Note {
	return c.Tones()
}

func guideTones(c theory.Chord) []theory.Note {
	third, seventh := c.GuideTones()
	return []theory.Note{third, seventh}
}

func allIndices(c cadence.Cadence) []int {
	out := make([]int, len(c.Chords))
	for i := range out {
		out[i] = i
	}
	return out
}

func pairIndex(c cadence.Cadence, idx int) int {
	if idx < 0 || idx+1 >= len(c.Chords) {
		return 0
	}
	return idx
}

func candidateTypes(actual cadence.Type, requested []cadence.Type) []cadence.Type {
	if len(requested) == 0 {
		return append([]cadence.Type(nil), cadence.AllTypes...)
	}
	out := make([]cadence.Type, 0, len(requested)+1)
	has := false
	seen := map[cadence.Type]bool{}
	for _, t := range requested {
		if seen[t] {
			continue
		}
		seen[t] = true
		if t == actual {
			has = true
		}
		out = append(out, t)
	}
	if !has {
		out = append(out, actual)
	}
	return out
}

type guideTone struct {
	note theory.Note
	role theory.ToneDescriptor
}

func guideToneOf(c theory.Chord, degree int) guideTone {
	if n, role, ok := c.ToneByDegree(degree); ok {
		return guideTone{note: n, role: role}
	}
	role := theory.CatalogThird()
	if degree == 7 {
		role = theory.CatalogSeventh()
	}
	return guideTone{note: theory.Transpose(c.Root, role.Semitones, theory.Ascending), role: role}
}

// resolvePair finds where a guide tone of chord i moves in chord i+1. The 7th
// is tried first, then the 3rd, looking for a step of one or two semitones;
// failing that, the 7th is held as a common tone.
func resolvePair(c cadence.Cadence, i int) ResolutionPair {
	src, dst := c.Chords[i], c.Chords[i+1]
	sources := []guideTone{guideToneOf(src, 7), guideToneOf(src, 3)}
	targets := []guideTone{guideToneOf(dst, 3), guideToneOf(dst, 7)}
	pair := ResolutionPair{
		SourceChordIndex: i,
		TargetChordIndex: i + 1,
		SourceRole:       sources[0].role,
		SourceNote:       sources[0].note,
	}
	for _, s := range sources {
		if t, ok := nearestTarget(s.note, targets, 1, 2); ok {
			pair.SourceRole = s.role
			pair.SourceNote = s.note
			pair.TargetNote = &t
			return pair
		}
	}
	if t, ok := nearestTarget(sources[0].note, targets, 0, 0); ok {
		pair.TargetNote = &t
	}
	return pair
}

func nearestTarget(from theory.Note, targets []guideTone, lo, hi int) (theory.Note, bool) {
	best := -1
	var out theory.Note
	for _, t := range targets {
		d := theory.SemitoneDistance(from, t.note)
		if d < lo || d > hi {
			continue
		}
		if best < 0 || d < best {
			best = d
			out = t.note
		}
	}
	return out, best >= 0
}
