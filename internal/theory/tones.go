package theory

import "fmt"

// ToneDescriptor addresses one scale-degree tone of a chord or scale.
type ToneDescriptor struct {
	Degree    int
	Label     string
	Semitones int
	Altered   bool
}

// Tone catalog. Semitones are measured from the root within one octave.
var (
	ToneRoot         = ToneDescriptor{Degree: 1, Label: "1", Semitones: 0}
	ToneFlatNine     = ToneDescriptor{Degree: 9, Label: "b9", Semitones: 1, Altered: true}
	ToneNine         = ToneDescriptor{Degree: 9, Label: "9", Semitones: 2}
	ToneSharpNine    = ToneDescriptor{Degree: 9, Label: "#9", Semitones: 3, Altered: true}
	ToneMinorThird   = ToneDescriptor{Degree: 3, Label: "b3", Semitones: 3}
	ToneThird        = ToneDescriptor{Degree: 3, Label: "3", Semitones: 4}
	ToneEleven       = ToneDescriptor{Degree: 11, Label: "11", Semitones: 5}
	ToneSharpEleven  = ToneDescriptor{Degree: 11, Label: "#11", Semitones: 6, Altered: true}
	ToneFlatFive     = ToneDescriptor{Degree: 5, Label: "b5", Semitones: 6, Altered: true}
	ToneFifth        = ToneDescriptor{Degree: 5, Label: "5", Semitones: 7}
	ToneSharpFive    = ToneDescriptor{Degree: 5, Label: "#5", Semitones: 8, Altered: true}
	ToneFlatThirteen = ToneDescriptor{Degree: 13, Label: "b13", Semitones: 8, Altered: true}
	ToneThirteen     = ToneDescriptor{Degree: 13, Label: "13", Semitones: 9}
	ToneSixth        = ToneDescriptor{Degree: 6, Label: "6", Semitones: 9}
	ToneDimSeventh   = ToneDescriptor{Degree: 7, Label: "bb7", Semitones: 9}
	ToneFlatSeventh  = ToneDescriptor{Degree: 7, Label: "b7", Semitones: 10}
	ToneSeventh      = ToneDescriptor{Degree: 7, Label: "7", Semitones: 11}
	ToneSus4         = ToneDescriptor{Degree: 4, Label: "4", Semitones: 5}
)

var toneCatalog = []ToneDescriptor{
	ToneRoot, ToneFlatNine, ToneNine, ToneSharpNine, ToneMinorThird, ToneThird,
	ToneSus4, ToneEleven, ToneSharpEleven, ToneFlatFive, ToneFifth, ToneSharpFive,
	ToneFlatThirteen, ToneSixth, ToneThirteen, ToneDimSeventh, ToneFlatSeventh, ToneSeventh,
}

// Tones returns the full catalog of chord tones.
func Tones() []ToneDescriptor {
	out := make([]ToneDescriptor, len(toneCatalog))
	copy(out, toneCatalog)
	return out
}

// CatalogThird is the guide-tone fallback for chords without a 3rd. It is
// always the major 3rd regardless of chord quality.
func CatalogThird() ToneDescriptor { return ToneThird }

// CatalogSeventh is the guide-tone fallback for chords without a 7th. It is
// always the major 7th regardless of chord quality.
func CatalogSeventh() ToneDescriptor { return ToneSeventh }

func validateTones(owner string, tones []ToneDescriptor) {
	if len(tones) == 0 {
		panic(fmt.Sprintf("theory: %s has no tones", owner))
	}
	for _, t := range tones {
		if t.Degree < 1 || t.Semitones < 0 || t.Semitones > 11 {
			panic(fmt.Sprintf("theory: %s has invalid tone %+v", owner, t))
		}
	}
}

func init() {
	validateTones("tone catalog", toneCatalog)
}
