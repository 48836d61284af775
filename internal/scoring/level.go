// Package scoring converts answer results into XP, levels, streaks and
// per-key statistics.
package scoring

import "math"

// XPPerUnit is the XP awarded for one correctly answered unit at full credit.
const XPPerUnit = 10

// PlayerLevel holds accumulated experience.
type PlayerLevel struct {
	TotalXP int `json:"total_xp" yaml:"total_xp"`
}

// Level returns the level for an XP total. Negative XP is level 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	lvl := int(math.Floor(math.Sqrt(float64(xp)/100))) + 1
	if lvl < 1 {
		return 1
	}
	return lvl
}

// XPRequiredForLevel is the inverse of Level.
func XPRequiredForLevel(n int) int {
	if n <= 1 {
		return 0
	}
	return (n - 1) * (n - 1) * 100
}

// Level returns the current level.
func (p PlayerLevel) Level() int {
	return Level(p.TotalXP)
}

// Progress returns the fraction of the way to the next level.
func (p PlayerLevel) Progress() float64 {
	lvl := p.Level()
	lo := XPRequiredForLevel(lvl)
	hi := XPRequiredForLevel(lvl + 1)
	if hi <= lo {
		return 0
	}
	return float64(p.TotalXP-lo) / float64(hi-lo)
}

// AwardXP returns the XP for answering units with the given credit. The
// bonus (0–1) adds up to half again.
func AwardXP(units int, credit, bonus float64) int {
	if units <= 0 || credit <= 0 {
		return 0
	}
	if bonus < 0 {
		bonus = 0
	}
	if bonus > 1 {
		bonus = 1
	}
	return int(math.Round(float64(XPPerUnit*units) * credit * (1 + 0.5*bonus)))
}
