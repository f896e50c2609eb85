package replicate

import (
	"context"
	"log"
	"time"

	"focusband/companion/internal/clockref"
	"focusband/companion/internal/timer"
)

// Transport is the point-to-point channel to the paired device. Delivery is
// best effort: sends may be delayed, duplicated, or lost, and the replicator
// never retries. The next natural snapshot is the de-facto retry.
type Transport interface {
	Send(ctx context.Context, snap Snapshot) error
}

// Replicator turns the accumulator's live totals into snapshots and pushes
// them to the paired device whenever the timer finishes or stops a phase.
type Replicator struct {
	acc       *timer.DailyAccumulator
	transport Transport
	clock     func() time.Time
	timeout   time.Duration
}

func NewReplicator(acc *timer.DailyAccumulator, transport Transport, clock func() time.Time) *Replicator {
	if clock == nil {
		clock = time.Now
	}
	return &Replicator{
		acc:       acc,
		transport: transport,
		clock:     clock,
		timeout:   5 * time.Second,
	}
}

// BuildSnapshot captures the current day's totals, rolling the accumulator
// first so a push just after midnight sends the fresh day.
func (r *Replicator) BuildSnapshot() Snapshot {
	now := r.clock()
	r.acc.RollIfNewDay(clockref.DayKey(now))
	totals := r.acc.Totals()
	return Snapshot{
		DayKey:       totals.DayKey,
		FocusSeconds: totals.FocusSeconds,
		BreakSeconds: totals.BreakSeconds,
		Sessions:     totals.Sessions,
		SentAt:       now,
	}
}

// Push sends the current snapshot fire-and-forget. Failures are logged and
// swallowed; nothing is queued.
func (r *Replicator) Push() {
	if r.transport == nil {
		return
	}
	snap := r.BuildSnapshot()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.transport.Send(ctx, snap); err != nil {
			log.Printf("summary push for %s failed: %v", snap.DayKey, err)
		}
	}()
}
