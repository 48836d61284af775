// Package model defines shared data structures.
package model

import "time"

// Config defines drill settings.
type Config struct {
	Questions         int
	KeyDifficulty     string
	Mode              string
	CadenceTypes      []string
	ExtendedV         string
	MinorMajorTonic   bool
	SpeedRoundSeconds int
	Position          int
	PairIndex         int
	AuralCandidates   []string
	FocusWeak         bool
	WeakTop           int
	WeakFactor        float64
	WeakWindow        int
	WeakMinAttempts   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
	MinAttempts int
}

// SessionStats captures a completed quiz session.
type SessionStats struct {
	UUID         string
	StartedAt    time.Time
	EndedAt      time.Time
	Mode         string
	Difficulty   string
	CadenceTypes string
	Questions    int
	Correct      int
	Incorrect    int
	HintsUsed    int
	XPEarned     int
	DurationMs   int64
}

// KeyStats stores per-key results for a session.
type KeyStats struct {
	Key       string
	Correct   int
	Incorrect int
}

// KeyAggregate aggregates key stats across sessions.
type KeyAggregate struct {
	Key       string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Mode       string
	Correct    int
	Incorrect  int
	XPEarned   int
	DurationMs int64
}
