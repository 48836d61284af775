package theory

import (
	"fmt"
	"strings"
)

// ScaleTypeDef is an immutable scale definition. Degree 8 is the octave.
type ScaleTypeDef struct {
	Name  string
	Tones []ToneDescriptor
}

// Scale is a scale type rooted on a note.
type Scale struct {
	Root Note
	Type ScaleTypeDef
}

var scaleTypes = []ScaleTypeDef{
	scaleFromLabels("Major", "1 2 3 4 5 6 7"),
	scaleFromLabels("Natural Minor", "1 2 b3 4 5 b6 b7"),
	scaleFromLabels("Dorian", "1 2 b3 4 5 6 b7"),
	scaleFromLabels("Phrygian", "1 b2 b3 4 5 b6 b7"),
	scaleFromLabels("Lydian", "1 2 3 #4 5 6 7"),
	scaleFromLabels("Mixolydian", "1 2 3 4 5 6 b7"),
	scaleFromLabels("Locrian", "1 b2 b3 4 b5 b6 b7"),
	scaleFromLabels("Harmonic Minor", "1 2 b3 4 5 b6 7"),
	scaleFromLabels("Melodic Minor", "1 2 b3 4 5 6 7"),
	scaleFromLabels("Altered", "1 b2 #2 3 b5 b6 b7"),
	scaleFromLabels("Lydian Dominant", "1 2 3 #4 5 6 b7"),
	scaleFromLabels("Half-Whole Diminished", "1 b2 #2 3 #4 5 6 b7"),
	scaleFromLabels("Whole Tone", "1 2 3 #4 #5 b7"),
	scaleFromLabels("Bebop Dominant", "1 2 3 4 5 6 b7 7"),
}

var degreeSemitones = map[string]int{"1": 0, "2": 2, "3": 4, "4": 5, "5": 7, "6": 9, "7": 11}

func scaleFromLabels(name, labels string) ScaleTypeDef {
	fields := strings.Fields(labels)
	tones := make([]ToneDescriptor, 0, len(fields)+1)
	for _, label := range fields {
		base := strings.TrimLeft(label, "b#")
		semis, ok := degreeSemitones[base]
		if !ok {
			panic(fmt.Sprintf("theory: bad scale label %q in %s", label, name))
		}
		prefix := label[:len(label)-len(base)]
		altered := prefix != ""
		semis += strings.Count(prefix, "#") - strings.Count(prefix, "b")
		tones = append(tones, ToneDescriptor{
			Degree:    int(base[0] - '0'),
			Label:     label,
			Semitones: semis,
			Altered:   altered,
		})
	}
	tones = append(tones, ToneDescriptor{Degree: 8, Label: "8", Semitones: 12})
	return ScaleTypeDef{Name: name, Tones: tones}
}

func init() {
	for _, st := range scaleTypes {
		if len(st.Tones) < 2 || st.Tones[0].Semitones != 0 || st.Tones[len(st.Tones)-1].Semitones != 12 {
			panic(fmt.Sprintf("theory: scale %s must span root to octave", st.Name))
		}
	}
}

// ScaleTypes returns the scale catalog.
func ScaleTypes() []ScaleTypeDef {
	out := make([]ScaleTypeDef, len(scaleTypes))
	copy(out, scaleTypes)
	return out
}

// ScaleTypeByName looks up a scale type, case-insensitively.
func ScaleTypeByName(name string) (ScaleTypeDef, bool) {
	for _, st := range scaleTypes {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return ScaleTypeDef{}, false
}

// Notes computes the scale from root to octave.
func (s Scale) Notes() []Note {
	out := make([]Note, len(s.Type.Tones))
	for i, d := range s.Type.Tones {
		out[i] = Transpose(s.Root, d.Semitones, Ascending)
	}
	return out
}

// RoleOfNote returns the scale degree whose note has the same name.
func (s Scale) RoleOfNote(n Note) (ToneDescriptor, bool) {
	for i, note := range s.Notes() {
		if note.Name == n.Name {
			return s.Type.Tones[i], true
		}
	}
	return ToneDescriptor{}, false
}
