package cadence

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/jazzquiz/internal/theory"
)

func TestBuildMajorInC(t *testing.T) {
	c := Build(theory.MustParseNote("C"), Major, Options{})
	if got := c.Symbols(); !reflect.DeepEqual(got, []string{"Dm7", "G7", "Cmaj7"}) {
		t.Fatalf("unexpected chords: %v", got)
	}
	if got := c.Numerals(); !reflect.DeepEqual(got, []string{"ii", "V", "I"}) {
		t.Fatalf("unexpected numerals: %v", got)
	}
	wantTones := [][]string{{"D", "F", "A", "C"}, {"G", "B", "D", "F"}, {"C", "E", "G", "B"}}
	for i, ch := range c.Chords {
		if got := theory.NoteNames(ch.Tones()); !reflect.DeepEqual(got, wantTones[i]) {
			t.Fatalf("chord %d tones = %v, want %v", i, got, wantTones[i])
		}
	}
}

func TestBuildAllTypes(t *testing.T) {
	tests := []struct {
		typ  Type
		key  string
		want []string
	}{
		{Minor, "C", []string{"Dm7b5", "G7", "Cm7"}},
		{TritoneSubstitution, "C", []string{"Dm7", "Db7", "Cmaj7"}},
		{Backdoor, "C", []string{"Fm7", "Bb7", "Cmaj7"}},
		{BirdChanges, "C", []string{"Em7", "A7", "Dm7", "G7", "Cmaj7"}},
		{Major, "Bb", []string{"Cm7", "F7", "Bbmaj7"}},
		{Major, "E", []string{"F#m7", "B7", "Emaj7"}},
	}
	for _, tc := range tests {
		t.Run(tc.typ.String()+"-"+tc.key, func(t *testing.T) {
			c := Build(theory.MustParseNote(tc.key), tc.typ, Options{})
			if got := c.Symbols(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			wantLen := 3
			if tc.typ == BirdChanges {
				wantLen = 5
			}
			if len(c.Chords) != wantLen {
				t.Fatalf("expected %d chords, got %d", wantLen, len(c.Chords))
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	c := Build(theory.MustParseNote("C"), Major, Options{ExtendedV: VAltered})
	if c.Chords[1].Symbol() != "G7alt" {
		t.Fatalf("expected altered V, got %s", c.Chords[1].Symbol())
	}
	m := Build(theory.MustParseNote("A"), Minor, Options{ExtendedV: VFlatNine, MinorMajorTonic: true})
	if got := m.Symbols(); !reflect.DeepEqual(got, []string{"Bm7b5", "E7b9", "AmMaj7"}) {
		t.Fatalf("unexpected minor cadence: %v", got)
	}
	for _, ext := range []ExtendedV{VNinth, VThirteenth} {
		cm := Build(theory.MustParseNote("C"), Minor, Options{ExtendedV: ext})
		if got := cm.Symbols(); !reflect.DeepEqual(got, []string{"Dm7b5", "G7", "Cm7"}) {
			t.Fatalf("%s: minor V should stay a plain 7, got %v", ext, got)
		}
	}
	if got := Build(theory.MustParseNote("C"), Minor, Options{ExtendedV: VAltered}).Chords[1].Symbol(); got != "G7alt" {
		t.Fatalf("expected altered minor V, got %s", got)
	}
	tt := Build(theory.MustParseNote("C"), TritoneSubstitution, Options{ExtendedV: VNinth})
	if tt.Chords[1].Symbol() != "Db7" {
		t.Fatalf("extended option must not touch SubV, got %s", tt.Chords[1].Symbol())
	}
}

func TestParseTypesFallsBack(t *testing.T) {
	if got := ParseTypes(nil); !reflect.DeepEqual(got, []Type{Major}) {
		t.Fatalf("expected default type, got %v", got)
	}
	if got := ParseTypes([]string{"bogus"}); !reflect.DeepEqual(got, []Type{Major}) {
		t.Fatalf("expected default type, got %v", got)
	}
	got := ParseTypes([]string{"Bird", "minor", "bird"})
	if !reflect.DeepEqual(got, []Type{BirdChanges, Minor}) {
		t.Fatalf("unexpected parse: %v", got)
	}
}

func TestKeyBucketsPartition(t *testing.T) {
	seen := map[int]bool{}
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		for _, k := range Keys(d) {
			if seen[k.PitchClass] {
				t.Fatalf("pitch class %d appears in more than one bucket", k.PitchClass)
			}
			seen[k.PitchClass] = true
		}
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 keys, got %d", len(seen))
	}
	if len(Keys(AllKeys)) != 12 {
		t.Fatalf("expected all bucket to hold 12 keys")
	}
	if ParseDifficulty("???") != AllKeys {
		t.Fatalf("unknown difficulty should fall back to all")
	}
	if d, ok := KeyDifficulty("Ab"); !ok || d != Hard {
		t.Fatalf("expected Ab to be hard, got %v %v", d, ok)
	}
}

func TestKeysUnknownDifficultyFallsBackToAll(t *testing.T) {
	if got := len(Keys(Difficulty(42))); got != 12 {
		t.Fatalf("expected 12 keys, got %d", got)
	}
	if got := len(Keys(AllKeys)); got != 12 {
		t.Fatalf("expected 12 keys, got %d", got)
	}
}
