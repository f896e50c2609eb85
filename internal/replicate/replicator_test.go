package replicate

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusband/companion/internal/model"
	"focusband/companion/internal/timer"
)

type captureTransport struct {
	sends chan Snapshot
	err   error
}

func (t *captureTransport) Send(_ context.Context, snap Snapshot) error {
	t.sends <- snap
	return t.err
}

func TestBuildSnapshotRollsToCurrentDay(t *testing.T) {
	acc := timer.NewDailyAccumulator("2026-03-14")
	acc.AddElapsed(model.PhaseFocus, 300)

	now := time.Date(2026, 3, 15, 0, 5, 0, 0, time.UTC)
	r := NewReplicator(acc, nil, func() time.Time { return now })

	snap := r.BuildSnapshot()
	if snap.DayKey != "2026-03-15" {
		t.Fatalf("dayKey = %s, want rolled-over 2026-03-15", snap.DayKey)
	}
	if snap.FocusSeconds != 0 {
		t.Fatalf("focusSeconds = %d, want 0 after rollover", snap.FocusSeconds)
	}
	if !snap.SentAt.Equal(now) {
		t.Fatalf("sentAt = %v, want %v", snap.SentAt, now)
	}
}

func TestPushSendsCurrentTotals(t *testing.T) {
	acc := timer.NewDailyAccumulator("2026-03-14")
	acc.AddElapsed(model.PhaseFocus, 1500)
	acc.IncrementSession()

	transport := &captureTransport{sends: make(chan Snapshot, 1)}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r := NewReplicator(acc, transport, func() time.Time { return now })

	r.Push()

	select {
	case snap := <-transport.sends:
		if snap.FocusSeconds != 1500 || snap.Sessions != 1 || snap.DayKey != "2026-03-14" {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("push never reached the transport")
	}
}

func TestPushSwallowsTransportFailure(t *testing.T) {
	acc := timer.NewDailyAccumulator("2026-03-14")
	transport := &captureTransport{sends: make(chan Snapshot, 1), err: errors.New("peer unreachable")}
	r := NewReplicator(acc, transport, nil)

	// Must not panic or block the caller.
	r.Push()
	select {
	case <-transport.sends:
	case <-time.After(2 * time.Second):
		t.Fatal("push never attempted the send")
	}
}
