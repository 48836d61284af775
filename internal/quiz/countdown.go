package quiz

import "time"

// Countdown is the speed-round timer. A zero Total disables it.
type Countdown struct {
	Total     time.Duration
	StartedAt time.Time
}

// NewCountdown starts a countdown at now.
func NewCountdown(seconds int, now time.Time) Countdown {
	if seconds <= 0 {
		return Countdown{}
	}
	return Countdown{Total: time.Duration(seconds) * time.Second, StartedAt: now}
}

// Active reports whether the countdown is running.
func (c Countdown) Active() bool {
	return c.Total > 0
}

// Remaining returns the time left, never negative.
func (c Countdown) Remaining(now time.Time) time.Duration {
	if !c.Active() {
		return 0
	}
	left := c.Total - now.Sub(c.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether an active countdown has run out.
func (c Countdown) Expired(now time.Time) bool {
	return c.Active() && c.Remaining(now) == 0
}
