package timer

import (
	"sync"

	"focusband/companion/internal/model"
)

// DailyAccumulator tallies focus and break seconds for the current local
// calendar day. Counters only grow within a day; crossing midnight resets
// them with no carry-over.
type DailyAccumulator struct {
	mu     sync.Mutex
	totals model.DailyTotals
}

func NewDailyAccumulator(dayKey string) *DailyAccumulator {
	return &DailyAccumulator{totals: model.DailyTotals{DayKey: dayKey}}
}

// RollIfNewDay resets all counters when the local date has moved past the
// stored day key. Callers invoke it before every mutation and snapshot.
func (a *DailyAccumulator) RollIfNewDay(dayKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.totals.DayKey == dayKey {
		return
	}
	a.totals = model.DailyTotals{DayKey: dayKey}
}

// AddElapsed credits seconds to the bucket matching phase. Idle phases and
// non-positive amounts are ignored.
func (a *DailyAccumulator) AddElapsed(phase string, seconds int) {
	if seconds <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case phase == model.PhaseFocus:
		a.totals.FocusSeconds += seconds
	case model.IsBreak(phase):
		a.totals.BreakSeconds += seconds
	}
}

// IncrementSession records one naturally completed focus phase.
func (a *DailyAccumulator) IncrementSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totals.Sessions++
}

// Totals returns a copy of the current day's counters.
func (a *DailyAccumulator) Totals() model.DailyTotals {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totals
}
