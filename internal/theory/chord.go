package theory

import (
	"fmt"
	"sort"
)

// Tier ranks chord types by how advanced they are.
type Tier int

const (
	TierBasic Tier = iota + 1
	TierIntermediate
	TierAdvanced
	TierExpert
)

// ChordTypeDef is an immutable chord quality definition.
type ChordTypeDef struct {
	Name   string
	Symbol string
	Tones  []ToneDescriptor
	Tier   Tier
}

// Chord symbols used by cadence templates.
const (
	SymbolMajorTriad  = ""
	SymbolMinorTriad  = "m"
	SymbolMajor7      = "maj7"
	SymbolMinor7      = "m7"
	SymbolDominant7   = "7"
	SymbolHalfDim7    = "m7b5"
	SymbolDiminished7 = "dim7"
	SymbolMinorMajor7 = "mMaj7"
	SymbolDominant9   = "9"
	SymbolDominant13  = "13"
	SymbolDominant7b9 = "7b9"
	SymbolDominant7s9 = "7#9"
	SymbolAltered     = "7alt"
)

var chordTypes = []ChordTypeDef{
	{Name: "Major Triad", Symbol: SymbolMajorTriad, Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth}},
	{Name: "Minor Triad", Symbol: SymbolMinorTriad, Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFifth}},
	{Name: "Diminished Triad", Symbol: "dim", Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFlatFive}},
	{Name: "Augmented Triad", Symbol: "aug", Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneSharpFive}},
	{Name: "Major 6th", Symbol: "6", Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneSixth}},
	{Name: "Minor 6th", Symbol: "m6", Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFifth, ToneSixth}},
	{Name: "Major 7th", Symbol: SymbolMajor7, Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneSeventh}},
	{Name: "Minor 7th", Symbol: SymbolMinor7, Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFifth, ToneFlatSeventh}},
	{Name: "Dominant 7th", Symbol: SymbolDominant7, Tier: TierBasic,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneFlatSeventh}},
	{Name: "Half-Diminished 7th", Symbol: SymbolHalfDim7, Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFlatFive, ToneFlatSeventh}},
	{Name: "Diminished 7th", Symbol: SymbolDiminished7, Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFlatFive, ToneDimSeventh}},
	{Name: "Minor Major 7th", Symbol: SymbolMinorMajor7, Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFifth, ToneSeventh}},
	{Name: "Dominant 7th Sus4", Symbol: "7sus4", Tier: TierIntermediate,
		Tones: []ToneDescriptor{ToneRoot, ToneSus4, ToneFifth, ToneFlatSeventh}},
	{Name: "Major 9th", Symbol: "maj9", Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneSeventh, ToneNine}},
	{Name: "Minor 9th", Symbol: "m9", Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneMinorThird, ToneFifth, ToneFlatSeventh, ToneNine}},
	{Name: "Dominant 9th", Symbol: SymbolDominant9, Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneFlatSeventh, ToneNine}},
	{Name: "Dominant 13th", Symbol: SymbolDominant13, Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFlatSeventh, ToneNine, ToneThirteen}},
	{Name: "Dominant 7th Flat 9", Symbol: SymbolDominant7b9, Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneFlatSeventh, ToneFlatNine}},
	{Name: "Dominant 7th Sharp 9", Symbol: SymbolDominant7s9, Tier: TierAdvanced,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneFlatSeventh, ToneSharpNine}},
	{Name: "Dominant 7th Sharp 11", Symbol: "7#11", Tier: TierExpert,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFifth, ToneFlatSeventh, ToneSharpEleven}},
	{Name: "Dominant 7th Flat 13", Symbol: "7b13", Tier: TierExpert,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFlatSeventh, ToneFlatThirteen}},
	{Name: "Altered Dominant", Symbol: SymbolAltered, Tier: TierExpert,
		Tones: []ToneDescriptor{ToneRoot, ToneThird, ToneFlatSeventh, ToneFlatNine, ToneSharpNine, ToneFlatThirteen}},
}

var chordTypesBySymbol = map[string]ChordTypeDef{}

func init() {
	for _, ct := range chordTypes {
		validateTones("chord "+ct.Name, ct.Tones)
		if _, dup := chordTypesBySymbol[ct.Symbol]; dup {
			panic(fmt.Sprintf("theory: duplicate chord symbol %q", ct.Symbol))
		}
		chordTypesBySymbol[ct.Symbol] = ct
	}
}

// ChordTypes returns the chord catalog in definition order.
func ChordTypes() []ChordTypeDef {
	out := make([]ChordTypeDef, len(chordTypes))
	copy(out, chordTypes)
	return out
}

// ChordTypeBySymbol looks up a chord type.
func ChordTypeBySymbol(symbol string) (ChordTypeDef, bool) {
	ct, ok := chordTypesBySymbol[symbol]
	return ct, ok
}

// MustChordType panics on unknown symbols; for static templates.
func MustChordType(symbol string) ChordTypeDef {
	ct, ok := ChordTypeBySymbol(symbol)
	if !ok {
		panic(fmt.Sprintf("theory: unknown chord symbol %q", symbol))
	}
	return ct
}

// Chord is a chord type rooted on a note.
type Chord struct {
	Root      Note
	Type      ChordTypeDef
	Inversion int
}

// NewChord builds a root-position chord.
func NewChord(root Note, ct ChordTypeDef) Chord {
	return Chord{Root: root, Type: ct}
}

// Symbol returns the display symbol, e.g. "Dm7".
func (c Chord) Symbol() string {
	return c.Root.Name + c.Type.Symbol
}

// String implements fmt.Stringer.
func (c Chord) String() string {
	return c.Symbol()
}

// Tones computes one note per tone descriptor, in descriptor order.
func (c Chord) Tones() []Note {
	return buildTones(c.Root, c.Type.Tones)
}

// ToneByDegree returns the first tone with the given degree.
func (c Chord) ToneByDegree(degree int) (Note, ToneDescriptor, bool) {
	for _, t := range c.Type.Tones {
		if t.Degree == degree {
			return Transpose(c.Root, t.Semitones, Ascending), t, true
		}
	}
	return Note{}, ToneDescriptor{}, false
}

// RoleOfNote returns the descriptor whose computed note has the same name.
func (c Chord) RoleOfNote(n Note) (ToneDescriptor, bool) {
	for i, tone := range c.Tones() {
		if tone.Name == n.Name {
			return c.Type.Tones[i], true
		}
	}
	return ToneDescriptor{}, false
}

// GuideTones returns the 3rd and 7th. Chords without one fall back to the
// catalog's major 3rd or major 7th regardless of quality.
func (c Chord) GuideTones() (third, seventh Note) {
	third, _, ok := c.ToneByDegree(3)
	if !ok {
		third = Transpose(c.Root, CatalogThird().Semitones, Ascending)
	}
	seventh, _, ok = c.ToneByDegree(7)
	if !ok {
		seventh = Transpose(c.Root, CatalogSeventh().Semitones, Ascending)
	}
	return third, seventh
}

// Voicing returns the tones stacked in ascending pitch starting from the
// inversion's bass note.
func (c Chord) Voicing() []Note {
	tones := c.Tones()
	sort.SliceStable(tones, func(i, j int) bool { return tones[i].MIDI < tones[j].MIDI })
	if len(tones) == 0 {
		return tones
	}
	inv := c.Inversion % len(tones)
	if inv < 0 {
		inv += len(tones)
	}
	out := make([]Note, 0, len(tones))
	out = append(out, tones[inv:]...)
	for _, n := range tones[:inv] {
		out = append(out, Transpose(n, 12, Ascending))
	}
	return out
}

func buildTones(root Note, descs []ToneDescriptor) []Note {
	out := make([]Note, len(descs))
	for i, d := range descs {
		out[i] = Transpose(root, d.Semitones, Ascending)
	}
	return out
}
