package cadence

import (
	"strings"

	"github.com/verte-zerg/jazzquiz/internal/theory"
)

// Difficulty buckets keys by the size of their key signature.
type Difficulty int

const (
	AllKeys Difficulty = iota
	Easy
	Medium
	Hard
)

var difficultyNames = map[Difficulty]string{
	AllKeys: "all",
	Easy:    "easy",
	Medium:  "medium",
	Hard:    "hard",
}

var keyBuckets = map[Difficulty][]string{
	Easy:   {"C", "G", "F"},
	Medium: {"D", "Bb", "A", "Eb"},
	Hard:   {"E", "Ab", "B", "Db", "F#"},
}

// String returns the config name.
func (d Difficulty) String() string {
	return difficultyNames[d]
}

// ParseDifficulty parses a config name; unknown names fall back to AllKeys.
func ParseDifficulty(s string) Difficulty {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == s {
			return d
		}
	}
	return AllKeys
}

// Keys returns the tonic notes allowed by the difficulty. Difficulties
// without a bucket, AllKeys included, return all 12 keys.
func Keys(d Difficulty) []theory.Note {
	names := keyBuckets[d]
	if len(names) == 0 {
		for _, bucket := range []Difficulty{Easy, Medium, Hard} {
			names = append(names, keyBuckets[bucket]...)
		}
	}
	out := make([]theory.Note, len(names))
	for i, name := range names {
		out[i] = theory.MustParseNote(name)
	}
	return out
}

// KeyDifficulty returns the bucket a key name belongs to.
func KeyDifficulty(name string) (Difficulty, bool) {
	for d, names := range keyBuckets {
		for _, n := range names {
			if n == name {
				return d, true
			}
		}
	}
	return AllKeys, false
}
