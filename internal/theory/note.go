// Package theory models pitches, intervals, chords and scales.
package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultOctave is the octave used when a note is created without one (C4 = MIDI 60).
const DefaultOctave = 4

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Natural roots that spell their accidentals with flats.
var flatNaturals = map[string]bool{"C": true, "F": true}

// Note is an immutable pitch value.
type Note struct {
	Name         string
	PitchClass   int
	MIDI         int
	PrefersSharp bool
}

// SpellPitchClass returns the note name for a pitch class.
func SpellPitchClass(pc int, sharp bool) string {
	pc = mod12(pc)
	if sharp {
		return sharpNames[pc]
	}
	return flatNames[pc]
}

// IsNatural reports whether the pitch class is a white key.
func IsNatural(pc int) bool {
	return sharpNames[mod12(pc)] == flatNames[mod12(pc)]
}

// NewNote builds a note from a MIDI number and accidental preference.
func NewNote(midi int, sharp bool) Note {
	pc := mod12(midi)
	return Note{
		Name:         SpellPitchClass(pc, sharp),
		PitchClass:   pc,
		MIDI:         midi,
		PrefersSharp: sharp,
	}
}

// Octave returns the scientific octave number of the note.
func (n Note) Octave() int {
	return floorDiv(n.MIDI, 12) - 1
}

// String implements fmt.Stringer.
func (n Note) String() string {
	return n.Name
}

// ParseNote parses names like "Eb", "f#" or "Bb3". Without an octave the note lands in
// DefaultOctave.
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("empty note name")
	}
	letter := strings.ToUpper(s[:1])
	rest := s[1:]
	accidental := ""
	if rest != "" && (rest[0] == '#' || rest[0] == 'b') {
		accidental = rest[:1]
		rest = rest[1:]
	}
	octave := DefaultOctave
	if rest != "" {
		v, err := strconv.Atoi(rest)
		if err != nil {
			return Note{}, fmt.Errorf("invalid note %q", s)
		}
		octave = v
	}
	name := letter + accidental
	pc, ok := pitchClassOf(name)
	if !ok {
		return Note{}, fmt.Errorf("invalid note %q", s)
	}
	return NewNote((octave+1)*12+pc, prefersSharp(name)), nil
}

// MustParseNote is ParseNote for static tables and tests.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NoteNames returns the names of notes in order.
func NoteNames(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Name
	}
	return out
}

func pitchClassOf(name string) (int, bool) {
	for i := range sharpNames {
		if sharpNames[i] == name || flatNames[i] == name {
			return i, true
		}
	}
	return 0, false
}

func prefersSharp(name string) bool {
	if strings.HasSuffix(name, "#") {
		return true
	}
	if strings.HasSuffix(name, "b") {
		return false
	}
	return !flatNaturals[name]
}

func mod12(v int) int {
	v %= 12
	if v < 0 {
		v += 12
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
