package quiz

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/jazzquiz/internal/theory"
)

// Hint returns the hint text for an answer unit at a level (1..MaxHints).
// Out-of-range indexes or levels yield no hint.
func Hint(q Question, index, level int) (string, bool) {
	if level < 1 || level > MaxHints || index < 0 {
		return "", false
	}
	switch q.Mode {
	case AuralIdentify:
		if index != 0 {
			return "", false
		}
		return auralHint(q, level), true
	case ChordIdentification:
		if index >= len(q.ExpectedChords) {
			return "", false
		}
		return identifyHint(q.ChordsToSpell[index], level), true
	default:
		if index >= len(q.ExpectedAnswers) {
			return "", false
		}
		return noteHint(q, index, level), true
	}
}

func auralHint(q Question, level int) string {
	c := q.Cadence
	switch level {
	case 1:
		return fmt.Sprintf("The progression has %d chords.", len(c.Chords))
	case 2:
		return fmt.Sprintf("It opens with a %s chord.", c.Chords[0].Type.Name)
	default:
		return fmt.Sprintf("It is a %s.", c.Type.Title())
	}
}

func identifyHint(ch theory.Chord, level int) string {
	switch level {
	case 1:
		return fmt.Sprintf("The chord has %d notes.", len(ch.Type.Tones))
	case 2:
		return fmt.Sprintf("The root is %s.", ch.Root.Name)
	default:
		return fmt.Sprintf("The quality is %s.", ch.Type.Name)
	}
}

func noteHint(q Question, index, level int) string {
	want := q.ExpectedAnswers[index]
	switch level {
	case 1:
		return fmt.Sprintf("%s: %d notes.", unitLabel(q, index), len(want))
	case 2:
		if len(want) == 0 {
			return "No notes expected."
		}
		return fmt.Sprintf("It includes %s.", want[0].Name)
	default:
		return "Answer: " + strings.Join(theory.NoteNames(want), " ")
	}
}

func unitLabel(q Question, index int) string {
	switch q.Mode {
	case CommonTones:
		return fmt.Sprintf("Common tones of %s and %s", q.ChordsToSpell[0].Symbol(), q.ChordsToSpell[1].Symbol())
	case ResolutionTargets:
		p := q.ResolutionPairs[q.PairIndex]
		return fmt.Sprintf("The %s (%s) of %s resolving into %s",
			p.SourceRole.Label, p.SourceNote.Name, q.ChordsToSpell[0].Symbol(), q.ChordsToSpell[1].Symbol())
	case GuideTones:
		return "3rd and 7th of " + q.ChordsToSpell[index].Symbol()
	default:
		return q.ChordsToSpell[index].Symbol()
	}
}
