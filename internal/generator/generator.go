// Package generator draws randomized drill questions.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

// Settings are the resolved drill options.
type Settings struct {
	Count           int
	Mode            quiz.Mode
	Difficulty      cadence.Difficulty
	Types           []cadence.Type
	ExtendedV       cadence.ExtendedV
	MinorMajorTonic bool
	// Position is the isolated chord index; out of range draws one.
	Position int
	// PairIndex is the adjacent pair for common tones and resolution
	// targets; out of range draws one with a non-empty answer.
	PairIndex  int
	Candidates []cadence.Type
	// WeakKeys are drawn with weight 1+WeakFactor instead of 1.
	WeakKeys   []string
	WeakFactor float64
}

// SettingsFromConfig resolves the string-typed config.
func SettingsFromConfig(cfg model.Config, weakKeys []string) (Settings, error) {
	mode, ok := quiz.ParseMode(cfg.Mode)
	if !ok {
		return Settings{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	s := Settings{
		Count:           cfg.Questions,
		Mode:            mode,
		Difficulty:      cadence.ParseDifficulty(cfg.KeyDifficulty),
		Types:           cadence.ParseTypes(cfg.CadenceTypes),
		ExtendedV:       cadence.ParseExtendedV(cfg.ExtendedV),
		MinorMajorTonic: cfg.MinorMajorTonic,
		Position:        cfg.Position,
		PairIndex:       cfg.PairIndex,
		Candidates:      parseCandidates(cfg.AuralCandidates),
	}
	if cfg.FocusWeak {
		s.WeakKeys = weakKeys
		s.WeakFactor = cfg.WeakFactor
	}
	return s, nil
}

// parseCandidates drops unknown names; nil means every cadence type.
func parseCandidates(names []string) []cadence.Type {
	var out []cadence.Type
	for _, name := range names {
		if t, ok := cadence.ParseType(name); ok {
			out = append(out, t)
		}
	}
	return out
}

// Generator produces randomized questions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Questions draws s.Count questions.
func (g *Generator) Questions(s Settings) []quiz.Question {
	out := make([]quiz.Question, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		out = append(out, g.Question(s))
	}
	return out
}

// Question draws a key, cadence type and mode options, then builds the question.
func (g *Generator) Question(s Settings) quiz.Question {
	key := g.drawKey(cadence.Keys(s.Difficulty), s.WeakKeys, s.WeakFactor)
	types := s.Types
	if len(types) == 0 {
		types = []cadence.Type{cadence.DefaultType}
	}
	typ := types[g.rnd.Intn(len(types))]
	ext := s.ExtendedV
	if ext == cadence.VRandom {
		ext = cadence.ExtendedChoices[g.rnd.Intn(len(cadence.ExtendedChoices))]
	}
	c := cadence.Build(key, typ, cadence.Options{ExtendedV: ext, MinorMajorTonic: s.MinorMajorTonic})

	opts := quiz.QuestionOptions{
		Position:   s.Position,
		PairIndex:  s.PairIndex,
		Candidates: s.Candidates,
	}
	switch s.Mode {
	case quiz.IsolatedChord:
		if opts.Position < 0 || opts.Position >= len(c.Chords) {
			opts.Position = g.rnd.Intn(len(c.Chords))
		}
	case quiz.CommonTones, quiz.ResolutionTargets:
		if opts.PairIndex < 0 || opts.PairIndex >= len(c.Chords)-1 {
			return g.drawPairQuestion(c, s.Mode, opts)
		}
	}
	return quiz.BuildQuestion(c, s.Mode, opts)
}

// drawPairQuestion picks a pair whose expected answer is not empty, so an
// empty submission can never be graded correct. Cadences without such a
// pair fall back to the first one.
func (g *Generator) drawPairQuestion(c cadence.Cadence, mode quiz.Mode, opts quiz.QuestionOptions) quiz.Question {
	var usable []quiz.Question
	for i := 0; i+1 < len(c.Chords); i++ {
		opts.PairIndex = i
		q := quiz.BuildQuestion(c, mode, opts)
		if len(q.ExpectedAnswers) == 1 && len(q.ExpectedAnswers[0]) > 0 {
			usable = append(usable, q)
		}
	}
	if len(usable) == 0 {
		opts.PairIndex = 0
		return quiz.BuildQuestion(c, mode, opts)
	}
	return usable[g.rnd.Intn(len(usable))]
}

// drawKey selects a key with a bias toward weak keys.
func (g *Generator) drawKey(keys []theory.Note, weakKeys []string, factor float64) theory.Note {
	weak := make(map[string]struct{}, len(weakKeys))
	for _, k := range weakKeys {
		weak[k] = struct{}{}
	}
	if factor < 0 {
		factor = 0
	}
	weights := make([]float64, len(keys))
	total := 0.0
	for i, key := range keys {
		w := 1.0
		if _, ok := weak[key.Name]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}

	r := g.rnd.Float64() * total
	acc := 0.0
	for j, w := range weights {
		acc += w
		if r <= acc {
			return keys[j]
		}
	}
	return keys[len(keys)-1]
}
