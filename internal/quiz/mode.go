// Package quiz turns cadences into drill questions and scores answers.
package quiz

import "strings"

// Mode is a drill mode.
type Mode int

const (
	FullProgression Mode = iota
	SpeedRound
	IsolatedChord
	GuideTones
	CommonTones
	ResolutionTargets
	AuralIdentify
	ChordIdentification
	SmoothVoicing
)

// AllModes lists the modes in menu order.
var AllModes = []Mode{
	FullProgression, SpeedRound, IsolatedChord, GuideTones, CommonTones,
	ResolutionTargets, AuralIdentify, ChordIdentification, SmoothVoicing,
}

// ModeInfo holds the display data for a mode.
type ModeInfo struct {
	Name        string
	Title       string
	Short       string
	Instruction string
}

var modeInfo = map[Mode]ModeInfo{
	FullProgression: {
		Name: "full", Title: "Full Progression", Short: "Full",
		Instruction: "Spell every chord of the progression.",
	},
	SpeedRound: {
		Name: "speed", Title: "Speed Round", Short: "Speed",
		Instruction: "Spell every chord before the timer runs out.",
	},
	IsolatedChord: {
		Name: "isolated", Title: "Isolated Chord", Short: "Single",
		Instruction: "Spell the highlighted chord.",
	},
	GuideTones: {
		Name: "guide-tones", Title: "Guide Tones", Short: "3 & 7",
		Instruction: "Enter only the 3rd and 7th of each chord.",
	},
	CommonTones: {
		Name: "common-tones", Title: "Common Tones", Short: "Common",
		Instruction: "Enter the notes shared by both chords.",
	},
	ResolutionTargets: {
		Name: "resolution", Title: "Resolution Targets", Short: "Resolve",
		Instruction: "Enter the note the guide tone resolves to.",
	},
	AuralIdentify: {
		Name: "aural", Title: "Aural Identification", Short: "Ear",
		Instruction: "Name the cadence you hear.",
	},
	ChordIdentification: {
		Name: "identify", Title: "Chord Identification", Short: "Name",
		Instruction: "Name each chord from its notes (e.g. Dm7).",
	},
	SmoothVoicing: {
		Name: "smooth", Title: "Smooth Voicing", Short: "Voice",
		Instruction: "Spell every chord, moving voices as little as possible.",
	},
}

// Info returns the display data of the mode.
func (m Mode) Info() ModeInfo {
	return modeInfo[m]
}

// String returns the config name of the mode.
func (m Mode) String() string {
	return modeInfo[m].Name
}

// ParseMode parses a config name.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, info := range modeInfo {
		if info.Name == s {
			return m, true
		}
	}
	return FullProgression, false
}

// SpellsNotes reports whether answers are note sets.
func (m Mode) SpellsNotes() bool {
	return m != AuralIdentify && m != ChordIdentification
}

// SingleAnswer reports whether the question has one answer unit.
func (m Mode) SingleAnswer() bool {
	return m == CommonTones || m == ResolutionTargets || m == IsolatedChord || m == AuralIdentify
}
