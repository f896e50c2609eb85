package replicate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"focusband/companion/internal/model"
)

func TestMergeIdempotent(t *testing.T) {
	in := Snapshot{
		DayKey:       "2026-03-14",
		FocusSeconds: 120,
		BreakSeconds: 30,
		Sessions:     2,
		SentAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	first, changed := Merge(model.DailyLogEntry{DayKey: in.DayKey}, in)
	if !changed {
		t.Fatal("first merge should report a change")
	}

	second, changed := Merge(first, in)
	if changed {
		t.Fatal("applying the same snapshot twice must be a no-op")
	}
	if second != first {
		t.Fatalf("second merge diverged: %+v vs %+v", second, first)
	}
}

func TestMergeNeverRegresses(t *testing.T) {
	day := "2026-03-14"
	fresh := Snapshot{DayKey: day, FocusSeconds: 120, Sessions: 2,
		SentAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	stale := Snapshot{DayKey: day, FocusSeconds: 90, Sessions: 1,
		SentAt: time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)}

	entry, _ := Merge(model.DailyLogEntry{DayKey: day}, fresh)
	merged, changed := Merge(entry, stale)

	if changed {
		t.Fatal("stale snapshot must not change the stored entry")
	}
	if merged.FocusSeconds != 120 || merged.Sessions != 2 {
		t.Fatalf("stale snapshot regressed the entry: %+v", merged)
	}
	if !merged.UpdatedAt.Equal(fresh.SentAt) {
		t.Fatalf("updatedAt = %v, want %v", merged.UpdatedAt, fresh.SentAt)
	}
}

func TestMergeTakesFieldwiseMax(t *testing.T) {
	day := "2026-03-14"
	a := Snapshot{DayKey: day, FocusSeconds: 100, BreakSeconds: 10, Sessions: 3,
		SentAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	b := Snapshot{DayKey: day, FocusSeconds: 80, BreakSeconds: 40, Sessions: 1,
		SentAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}

	entry, _ := Merge(model.DailyLogEntry{DayKey: day}, a)
	merged, changed := Merge(entry, b)

	if !changed {
		t.Fatal("b raises breakSeconds, merge must report a change")
	}
	if merged.FocusSeconds != 100 || merged.BreakSeconds != 40 || merged.Sessions != 3 {
		t.Fatalf("fieldwise max violated: %+v", merged)
	}
}

func TestNormalizeDefaultsMissingFields(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	var msg Message
	if err := json.Unmarshal([]byte(`{"type":"dailySummary"}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	snap, err := msg.Normalize(now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if snap.DayKey != "2026-03-14" {
		t.Fatalf("ymd defaulted to %s, want receiver's day", snap.DayKey)
	}
	if snap.FocusSeconds != 0 || snap.BreakSeconds != 0 || snap.Sessions != 0 {
		t.Fatalf("missing counters must default to zero: %+v", snap)
	}
	if !snap.SentAt.Equal(now) {
		t.Fatalf("missing updatedAt defaulted to %v, want %v", snap.SentAt, now)
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	msg := Message{Type: MessageType, YMD: "2026-03-14", FocusSeconds: -7, Sessions: -1}
	snap, err := msg.Normalize(time.Now())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if snap.FocusSeconds != 0 || snap.Sessions != 0 {
		t.Fatalf("negative counters must clamp to zero: %+v", snap)
	}
}

func TestNormalizeRejectsWrongType(t *testing.T) {
	msg := Message{Type: "settingsChanged", YMD: "2026-03-14"}
	if _, err := msg.Normalize(time.Now()); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
}

func TestNewMessageCarriesSendInstant(t *testing.T) {
	sent := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	msg := NewMessage(Snapshot{DayKey: "2026-03-14", FocusSeconds: 60, SentAt: sent})

	if msg.Type != MessageType || msg.Version != MessageVersion {
		t.Fatalf("bad envelope: %+v", msg)
	}

	snap, err := msg.Normalize(sent.Add(time.Hour))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !snap.SentAt.Equal(sent) {
		t.Fatalf("sentAt = %v, want %v", snap.SentAt, sent)
	}
}
