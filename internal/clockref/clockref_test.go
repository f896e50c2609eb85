package clockref

import (
	"testing"
	"time"
)

func TestRemaining(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		startRemaining int
		elapsed        time.Duration
		want           int
	}{
		{"no time passed", 1500, 0, 1500},
		{"mid phase", 1500, 10 * time.Second, 1490},
		{"exactly exhausted", 1500, 1500 * time.Second, 0},
		{"past the end", 1500, 2000 * time.Second, 0},
		{"zero remaining stays zero", 0, 5 * time.Second, 0},
		{"clock went backwards", 60, -30 * time.Second, 60},
		{"sub-second elapsed floors", 60, 900 * time.Millisecond, 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Remaining(start, tc.startRemaining, start.Add(tc.elapsed))
			if got != tc.want {
				t.Fatalf("Remaining(%d, +%v) = %d, want %d", tc.startRemaining, tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestRemainingNonIncreasing(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	prev := Remaining(start, 120, start)
	for elapsed := 1; elapsed <= 130; elapsed++ {
		got := Remaining(start, 120, start.Add(time.Duration(elapsed)*time.Second))
		if got > prev {
			t.Fatalf("remaining increased from %d to %d at elapsed=%d", prev, got, elapsed)
		}
		if got < 0 {
			t.Fatalf("remaining went negative: %d at elapsed=%d", got, elapsed)
		}
		prev = got
	}
}

func TestDayKey(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 2026-03-15 03:30 UTC is still 2026-03-14 in New York.
	instant := time.Date(2026, 3, 15, 3, 30, 0, 0, time.UTC)
	if got := DayKey(instant.In(loc)); got != "2026-03-14" {
		t.Fatalf("DayKey in New York = %s, want 2026-03-14", got)
	}
	if got := DayKey(instant); got != "2026-03-15" {
		t.Fatalf("DayKey in UTC = %s, want 2026-03-15", got)
	}
}
