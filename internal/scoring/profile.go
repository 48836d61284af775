package scoring

import (
	"sort"
	"time"
)

// KeyRecord counts attempts in one key.
type KeyRecord struct {
	Attempts int `json:"attempts" yaml:"attempts"`
	Correct  int `json:"correct" yaml:"correct"`
}

// Accuracy returns Correct/Attempts, or 1 with no attempts.
func (r KeyRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 1
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// LifetimeStats aggregates answers across sessions.
type LifetimeStats struct {
	Questions int                  `json:"questions" yaml:"questions"`
	Correct   int                  `json:"correct" yaml:"correct"`
	PerKey    map[string]KeyRecord `json:"per_key" yaml:"per_key"`
}

// KeyAccuracy is one row of the weak-key ranking.
type KeyAccuracy struct {
	Key string
	KeyRecord
}

// WeakestKeys ranks keys with more than minAttempts attempts by ascending
// accuracy.
// A non-positive n returns every eligible key.
func (s LifetimeStats) WeakestKeys(minAttempts, n int) []KeyAccuracy {
	rows := make([]KeyAccuracy, 0, len(s.PerKey))
	for key, rec := range s.PerKey {
		if rec.Attempts <= minAttempts || rec.Attempts == 0 {
			continue
		}
		rows = append(rows, KeyAccuracy{Key: key, KeyRecord: rec})
	}
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].Accuracy(), rows[j].Accuracy()
		if ai == aj {
			return rows[i].Key < rows[j].Key
		}
		return ai < aj
	})
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// Streak counts consecutive practice days with a correct answer.
type Streak struct {
	Current int       `json:"current" yaml:"current"`
	Best    int       `json:"best" yaml:"best"`
	LastDay time.Time `json:"last_day" yaml:"last_day"`
}

// Record updates the streak for a session on day. Days are compared as
// calendar dates in day's location.
func (s Streak) Record(day time.Time, hadCorrect bool) Streak {
	if !hadCorrect {
		return s
	}
	today := truncateDay(day)
	if !s.LastDay.IsZero() {
		last := truncateDay(s.LastDay.In(day.Location()))
		switch {
		case !today.After(last):
			return s
		case last.AddDate(0, 0, 1).Equal(today):
			s.Current++
		default:
			s.Current = 1
		}
	} else {
		s.Current = 1
	}
	s.LastDay = today
	if s.Current > s.Best {
		s.Best = s.Current
	}
	return s
}

// Active returns the streak as seen on day: a missed day resets it to zero.
func (s Streak) Active(day time.Time) int {
	if s.LastDay.IsZero() {
		return 0
	}
	today := truncateDay(day)
	last := truncateDay(s.LastDay.In(day.Location()))
	if today.After(last.AddDate(0, 0, 1)) {
		return 0
	}
	return s.Current
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Profile is the long-lived player record.
type Profile struct {
	Level  PlayerLevel   `json:"level" yaml:"level"`
	Stats  LifetimeStats `json:"stats" yaml:"stats"`
	Streak Streak        `json:"streak" yaml:"streak"`
}

// Outcome is one checked question as seen by the scoring engine.
type Outcome struct {
	Key     string
	Correct bool
	Credit  float64
	Units   int
	Bonus   float64
}

// ApplyResult returns a copy of p updated with the outcome.
func ApplyResult(p Profile, o Outcome) Profile {
	perKey := make(map[string]KeyRecord, len(p.Stats.PerKey)+1)
	for k, v := range p.Stats.PerKey {
		perKey[k] = v
	}
	rec := perKey[o.Key]
	rec.Attempts++
	p.Stats.Questions++
	if o.Correct {
		rec.Correct++
		p.Stats.Correct++
		p.Level.TotalXP += AwardXP(o.Units, o.Credit, o.Bonus)
	}
	perKey[o.Key] = rec
	p.Stats.PerKey = perKey
	return p
}
