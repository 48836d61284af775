package theory

// Direction selects ascending or descending motion.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Quality classifies an interval.
type Quality string

const (
	Perfect    Quality = "perfect"
	Major      Quality = "major"
	Minor      Quality = "minor"
	Augmented  Quality = "augmented"
	Diminished Quality = "diminished"
)

// IntervalTypeDef describes a named interval.
type IntervalTypeDef struct {
	Name      string
	ShortName string
	Semitones int
	Quality   Quality
}

// Interval is an interval type placed on a root.
type Interval struct {
	Root      Note
	Type      IntervalTypeDef
	Direction Direction
}

var intervalTypes = []IntervalTypeDef{
	{Name: "Unison", ShortName: "P1", Semitones: 0, Quality: Perfect},
	{Name: "Minor 2nd", ShortName: "m2", Semitones: 1, Quality: Minor},
	{Name: "Major 2nd", ShortName: "M2", Semitones: 2, Quality: Major},
	{Name: "Minor 3rd", ShortName: "m3", Semitones: 3, Quality: Minor},
	{Name: "Major 3rd", ShortName: "M3", Semitones: 4, Quality: Major},
	{Name: "Perfect 4th", ShortName: "P4", Semitones: 5, Quality: Perfect},
	{Name: "Tritone", ShortName: "TT", Semitones: 6, Quality: Augmented},
	{Name: "Perfect 5th", ShortName: "P5", Semitones: 7, Quality: Perfect},
	{Name: "Minor 6th", ShortName: "m6", Semitones: 8, Quality: Minor},
	{Name: "Major 6th", ShortName: "M6", Semitones: 9, Quality: Major},
	{Name: "Minor 7th", ShortName: "m7", Semitones: 10, Quality: Minor},
	{Name: "Major 7th", ShortName: "M7", Semitones: 11, Quality: Major},
	{Name: "Octave", ShortName: "P8", Semitones: 12, Quality: Perfect},
	{Name: "Minor 9th", ShortName: "b9", Semitones: 13, Quality: Minor},
	{Name: "Major 9th", ShortName: "9", Semitones: 14, Quality: Major},
	{Name: "Augmented 9th", ShortName: "#9", Semitones: 15, Quality: Augmented},
	{Name: "Perfect 11th", ShortName: "11", Semitones: 17, Quality: Perfect},
	{Name: "Augmented 11th", ShortName: "#11", Semitones: 18, Quality: Augmented},
	{Name: "Minor 13th", ShortName: "b13", Semitones: 20, Quality: Minor},
	{Name: "Major 13th", ShortName: "13", Semitones: 21, Quality: Major},
}

// IntervalTypes returns the interval catalog.
func IntervalTypes() []IntervalTypeDef {
	out := make([]IntervalTypeDef, len(intervalTypes))
	copy(out, intervalTypes)
	return out
}

// IntervalByShortName looks up an interval type.
func IntervalByShortName(short string) (IntervalTypeDef, bool) {
	for _, it := range intervalTypes {
		if it.ShortName == short {
			return it, true
		}
	}
	return IntervalTypeDef{}, false
}

// Transpose moves root by semitones in the given direction. The accidental
// preference of the root carries over to the result.
func Transpose(root Note, semitones int, dir Direction) Note {
	if dir == Descending {
		semitones = -semitones
	}
	return NewNote(root.MIDI+semitones, root.PrefersSharp)
}

// Target returns the note the interval lands on.
func (iv Interval) Target() Note {
	return Transpose(iv.Root, iv.Type.Semitones, iv.Direction)
}

// SemitoneDistance returns the shortest distance between two pitch classes (0–6).
func SemitoneDistance(a, b Note) int {
	d := mod12(a.PitchClass - b.PitchClass)
	if d > 6 {
		d = 12 - d
	}
	return d
}
