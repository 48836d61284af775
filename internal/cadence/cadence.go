// Package cadence builds ii-V-I family chord progressions.
package cadence

import (
	"strings"

	"github.com/verte-zerg/jazzquiz/internal/theory"
)

// Type identifies a cadence template.
type Type int

const (
	Major Type = iota
	Minor
	TritoneSubstitution
	Backdoor
	BirdChanges
)

// DefaultType is used when a caller's type selection is empty.
const DefaultType = Major

// AllTypes lists every cadence type in display order.
var AllTypes = []Type{Major, Minor, TritoneSubstitution, Backdoor, BirdChanges}

var typeNames = map[Type]string{
	Major:               "major",
	Minor:               "minor",
	TritoneSubstitution: "tritone",
	Backdoor:            "backdoor",
	BirdChanges:         "bird",
}

var typeTitles = map[Type]string{
	Major:               "Major ii-V-I",
	Minor:               "Minor iiø-V-i",
	TritoneSubstitution: "Tritone Substitution",
	Backdoor:            "Backdoor ii-V",
	BirdChanges:         "Bird Changes",
}

// String returns the config name of the type.
func (t Type) String() string {
	return typeNames[t]
}

// Title returns a human-readable name.
func (t Type) Title() string {
	return typeTitles[t]
}

// ParseType parses a config name such as "tritone".
func ParseType(s string) (Type, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// ParseTypes parses a list of names, dropping unknown entries. An empty
// result falls back to DefaultType.
func ParseTypes(names []string) []Type {
	seen := map[Type]bool{}
	out := make([]Type, 0, len(names))
	for _, name := range names {
		t, ok := ParseType(name)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return []Type{DefaultType}
	}
	return out
}

// ExtendedV selects the dominant chord quality used for V.
type ExtendedV int

const (
	VBasic ExtendedV = iota
	VNinth
	VThirteenth
	VFlatNine
	VAltered
	VRandom
)

var extendedVNames = map[ExtendedV]string{
	VBasic:      "basic",
	VNinth:      "ninth",
	VThirteenth: "thirteenth",
	VFlatNine:   "flat-nine",
	VAltered:    "altered",
	VRandom:     "random",
}

var extendedVSymbols = map[ExtendedV]string{
	VBasic:      theory.SymbolDominant7,
	VNinth:      theory.SymbolDominant9,
	VThirteenth: theory.SymbolDominant13,
	VFlatNine:   theory.SymbolDominant7b9,
	VAltered:    theory.SymbolAltered,
}

// ExtendedChoices are the concrete options VRandom draws from.
var ExtendedChoices = []ExtendedV{VNinth, VThirteenth, VFlatNine, VAltered}

// String returns the config name.
func (e ExtendedV) String() string {
	return extendedVNames[e]
}

// ParseExtendedV parses a config name; unknown names fall back to VBasic.
func ParseExtendedV(s string) ExtendedV {
	s = strings.ToLower(strings.TrimSpace(s))
	for e, name := range extendedVNames {
		if name == s {
			return e
		}
	}
	return VBasic
}

// Options tune the chord qualities picked by a template.
type Options struct {
	// ExtendedV is the quality of the V chord in major and minor cadences.
	// VRandom is resolved by the caller; Build treats it as VBasic.
	ExtendedV ExtendedV
	// MinorMajorTonic uses mMaj7 instead of m7 for the minor i chord.
	MinorMajorTonic bool
}

// Cadence is a concrete progression in a key.
type Cadence struct {
	Key    theory.Note
	Type   Type
	Chords []theory.Chord
}

// Numerals returns the roman numeral of every chord.
func (c Cadence) Numerals() []string {
	tmpl := templates[c.Type]
	out := make([]string, len(tmpl))
	for i, slot := range tmpl {
		out[i] = slot.numeral
	}
	return out
}

// Symbols returns chord symbols such as "Dm7 G7 Cmaj7".
func (c Cadence) Symbols() []string {
	out := make([]string, len(c.Chords))
	for i, ch := range c.Chords {
		out[i] = ch.Symbol()
	}
	return out
}

// String implements fmt.Stringer.
func (c Cadence) String() string {
	return c.Key.Name + " " + c.Type.Title() + ": " + strings.Join(c.Symbols(), " ")
}

type slot struct {
	numeral   string
	semitones int
	symbol    string
	dominant  bool
	// minorDominant takes only the extensions in minorExtendedV.
	minorDominant bool
	tonicSlot     bool
}

// minorExtendedV are the V qualities whose tensions (b9, b13) sit in the
// minor key. Other options leave a minor V as a plain 7.
var minorExtendedV = map[ExtendedV]bool{VFlatNine: true, VAltered: true}

var templates = map[Type][]slot{
	Major: {
		{numeral: "ii", semitones: 2, symbol: theory.SymbolMinor7},
		{numeral: "V", semitones: 7, symbol: theory.SymbolDominant7, dominant: true},
		{numeral: "I", semitones: 0, symbol: theory.SymbolMajor7},
	},
	Minor: {
		{numeral: "iiø", semitones: 2, symbol: theory.SymbolHalfDim7},
		{numeral: "V", semitones: 7, symbol: theory.SymbolDominant7, minorDominant: true},
		{numeral: "i", semitones: 0, symbol: theory.SymbolMinor7, tonicSlot: true},
	},
	TritoneSubstitution: {
		{numeral: "ii", semitones: 2, symbol: theory.SymbolMinor7},
		{numeral: "SubV", semitones: 1, symbol: theory.SymbolDominant7},
		{numeral: "I", semitones: 0, symbol: theory.SymbolMajor7},
	},
	Backdoor: {
		{numeral: "iv", semitones: 5, symbol: theory.SymbolMinor7},
		{numeral: "bVII", semitones: 10, symbol: theory.SymbolDominant7},
		{numeral: "I", semitones: 0, symbol: theory.SymbolMajor7},
	},
	BirdChanges: {
		{numeral: "iii", semitones: 4, symbol: theory.SymbolMinor7},
		{numeral: "VI", semitones: 9, symbol: theory.SymbolDominant7},
		{numeral: "ii", semitones: 2, symbol: theory.SymbolMinor7},
		{numeral: "V", semitones: 7, symbol: theory.SymbolDominant7},
		{numeral: "I", semitones: 0, symbol: theory.SymbolMajor7},
	},
}

func init() {
	for _, t := range AllTypes {
		for _, s := range templates[t] {
			theory.MustChordType(s.symbol)
		}
	}
	for _, sym := range extendedVSymbols {
		theory.MustChordType(sym)
	}
}

// Build realizes a cadence template in key. Roots inherit the key's
// accidental preference.
func Build(key theory.Note, t Type, opts Options) Cadence {
	tmpl, ok := templates[t]
	if !ok {
		t = DefaultType
		tmpl = templates[t]
	}
	chords := make([]theory.Chord, len(tmpl))
	for i, s := range tmpl {
		symbol := s.symbol
		if s.dominant || (s.minorDominant && minorExtendedV[opts.ExtendedV]) {
			if sym, ok := extendedVSymbols[opts.ExtendedV]; ok {
				symbol = sym
			}
		}
		if s.tonicSlot && opts.MinorMajorTonic {
			symbol = theory.SymbolMinorMajor7
		}
		root := theory.Transpose(key, s.semitones, theory.Ascending)
		chords[i] = theory.NewChord(root, theory.MustChordType(symbol))
	}
	return Cadence{Key: key, Type: t, Chords: chords}
}
