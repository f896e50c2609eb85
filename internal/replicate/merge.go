package replicate

import "focusband/companion/internal/model"

// Merge reconciles an inbound snapshot with the stored entry for the same
// day. Each counter takes the maximum of the two sides, so stale or
// duplicated deliveries can never regress a total. The second return value
// reports whether anything changed; unchanged merges are not persisted.
//
// This assumes sender-side counters only grow within a day. A legitimate
// decrease has no representation and is deliberately not reconciled.
func Merge(existing model.DailyLogEntry, in Snapshot) (model.DailyLogEntry, bool) {
	merged := model.DailyLogEntry{
		DayKey:       in.DayKey,
		FocusSeconds: maxInt(existing.FocusSeconds, in.FocusSeconds),
		BreakSeconds: maxInt(existing.BreakSeconds, in.BreakSeconds),
		Sessions:     maxInt(existing.Sessions, in.Sessions),
		UpdatedAt:    existing.UpdatedAt,
	}
	if in.SentAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = in.SentAt
	}

	changed := merged.FocusSeconds != existing.FocusSeconds ||
		merged.BreakSeconds != existing.BreakSeconds ||
		merged.Sessions != existing.Sessions ||
		!merged.UpdatedAt.Equal(existing.UpdatedAt)
	return merged, changed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
