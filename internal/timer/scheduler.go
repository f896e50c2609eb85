package timer

import "time"

// Scheduler runs a function once after a delay. Every transition that
// supersedes a pending alert cancels it through the returned cancel func,
// so a stale alert can never fire after a stop or a phase change.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// AfterFuncScheduler is the production Scheduler backed by time.AfterFunc.
type AfterFuncScheduler struct{}

func (AfterFuncScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Alerter receives the phase-completion cue (notification, haptic, log line).
type Alerter interface {
	PhaseComplete(phase string)
}

// Pusher triggers a best-effort replication of the current daily totals.
type Pusher interface {
	Push()
}
