package quiz

// State is the progress of a quiz session. Transitions return new values and
// never modify the receiver's slices.
type State struct {
	Questions []Question
	Index     int
	HintsUsed int
	Submitted bool
	Results   []Result
}

// NewState starts a session at the first question.
func NewState(questions []Question) State {
	return State{Questions: questions}
}

// Current returns the active question.
func (s State) Current() (Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Done reports whether every question has been answered.
func (s State) Done() bool {
	return s.Index >= len(s.Questions)
}

// Submit checks an answer for the active question. A second submission for
// the same question is ignored.
func Submit(s State, a Answer) (State, Result, bool) {
	q, ok := s.Current()
	if !ok || s.Submitted {
		return s, Result{}, false
	}
	res := Check(q, a, s.HintsUsed)
	results := make([]Result, len(s.Results), len(s.Results)+1)
	copy(results, s.Results)
	s.Results = append(results, res)
	s.Submitted = true
	return s, res, true
}

// Advance moves to the next question. Unsubmitted questions are recorded as
// wrong.
func Advance(s State) State {
	if s.Done() {
		return s
	}
	if !s.Submitted {
		s, _, _ = Submit(s, Answer{})
	}
	s.Index++
	s.HintsUsed = 0
	s.Submitted = false
	return s
}

// RequestHint consumes the next hint level for an answer unit.
func RequestHint(s State, index int) (State, string, bool) {
	q, ok := s.Current()
	if !ok || s.Submitted || s.HintsUsed >= MaxHints {
		return s, "", false
	}
	text, ok := Hint(q, index, s.HintsUsed+1)
	if !ok {
		return s, "", false
	}
	s.HintsUsed++
	return s, text, true
}

// Summary aggregates the recorded results.
func (s State) Summary() (correct, total int, credit float64) {
	for _, r := range s.Results {
		total++
		if r.Correct {
			correct++
		}
		credit += r.Credit
	}
	return correct, total, credit
}
