package model

import "time"

const (
	PhaseIdle       = "idle"
	PhaseFocus      = "focus"
	PhaseShortBreak = "short_break"
	PhaseLongBreak  = "long_break"

	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusPaused  = "paused"
)

const (
	DefaultFocusDurationSeconds      = 25 * 60
	DefaultShortBreakDurationSeconds = 5 * 60
	DefaultLongBreakDurationSeconds  = 15 * 60

	// Every fourth completed focus phase is followed by a long break.
	FocusPhasesPerLongBreak = 4

	// DailyLogRetention caps the per-day log to the most recent year of entries.
	DailyLogRetention = 365
)

// IsBreak reports whether phase is one of the two break phases.
func IsBreak(phase string) bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// DailyTotals tallies focus time for a single local calendar day on the
// sending device. Counters only grow within a day; a day rollover resets them.
type DailyTotals struct {
	DayKey       string `json:"ymd"`
	FocusSeconds int    `json:"focusSeconds"`
	BreakSeconds int    `json:"breakSeconds"`
	Sessions     int    `json:"sessions"`
}

// DailyLogEntry is the persisted per-day record on the receiving device.
// It is only ever mutated through the monotone-max merge.
type DailyLogEntry struct {
	DayKey       string    `json:"ymd"`
	FocusSeconds int       `json:"focusSeconds"`
	BreakSeconds int       `json:"breakSeconds"`
	Sessions     int       `json:"sessions"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Device is a paired sender registered with the companion service.
type Device struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
