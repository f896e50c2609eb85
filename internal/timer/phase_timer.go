package timer

import (
	"sync"
	"time"

	"focusband/companion/internal/clockref"
	"focusband/companion/internal/model"
)

// Config carries the configured phase lengths in seconds. Zero fields fall
// back to the classic defaults.
type Config struct {
	FocusSeconds      int
	ShortBreakSeconds int
	LongBreakSeconds  int
}

func (c Config) withDefaults() Config {
	if c.FocusSeconds <= 0 {
		c.FocusSeconds = model.DefaultFocusDurationSeconds
	}
	if c.ShortBreakSeconds <= 0 {
		c.ShortBreakSeconds = model.DefaultShortBreakDurationSeconds
	}
	if c.LongBreakSeconds <= 0 {
		c.LongBreakSeconds = model.DefaultLongBreakDurationSeconds
	}
	return c
}

// Snapshot is a read-only view of the timer for display.
type Snapshot struct {
	Phase             string `json:"phase"`
	Status            string `json:"status"`
	TotalPhaseSeconds int    `json:"totalPhaseSeconds"`
	RemainingSeconds  int    `json:"remainingSeconds"`
}

// PhaseTimer is the wrist-side countdown state machine. All transitions are
// synchronous and in-memory; phase completion detected inside Tick is
// deferred through the Scheduler so the transition never re-enters the tick
// that noticed it. Remaining time is always derived from a start reference
// instant, so suspensions and missed ticks cause no drift.
type PhaseTimer struct {
	mu        sync.Mutex
	cfg       Config
	clock     func() time.Time
	scheduler Scheduler
	alerter   Alerter
	acc       *DailyAccumulator
	pusher    Pusher

	phase           string
	totalSeconds    int
	startRef        time.Time
	startRemaining  int
	pausedRemaining int
	running         bool
	paused          bool

	focusCompletions int
	generation       uint64
	cancelAlert      func()
}

func NewPhaseTimer(cfg Config, clock func() time.Time, scheduler Scheduler, alerter Alerter, acc *DailyAccumulator, pusher Pusher) *PhaseTimer {
	if clock == nil {
		clock = time.Now
	}
	return &PhaseTimer{
		cfg:       cfg.withDefaults(),
		clock:     clock,
		scheduler: scheduler,
		alerter:   alerter,
		acc:       acc,
		pusher:    pusher,
		phase:     model.PhaseIdle,
	}
}

// Start begins counting down a phase from any prior state. A non-positive
// durationSeconds falls back to the configured length for that phase.
func (t *PhaseTimer) Start(phase string, durationSeconds int) {
	if phase != model.PhaseFocus && !model.IsBreak(phase) {
		return
	}

	t.mu.Lock()
	if durationSeconds <= 0 {
		durationSeconds = t.durationFor(phase)
	}
	now := t.clock()
	t.acc.RollIfNewDay(clockref.DayKey(now))

	t.generation++
	t.cancelPendingAlert()
	t.phase = phase
	t.totalSeconds = durationSeconds
	t.startRef = now
	t.startRemaining = durationSeconds
	t.pausedRemaining = 0
	t.running = true
	t.paused = false
	t.scheduleAlert(phase, durationSeconds)
	t.mu.Unlock()
}

// Pause freezes the countdown. A no-op unless the timer is running.
func (t *PhaseTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.paused {
		return
	}
	t.pausedRemaining = clockref.Remaining(t.startRef, t.startRemaining, t.clock())
	t.running = false
	t.paused = true
	t.generation++
	t.cancelPendingAlert()
}

// Resume continues a paused countdown from the frozen remaining value.
// A no-op unless the timer is paused.
func (t *PhaseTimer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.paused {
		return
	}
	t.startRef = t.clock()
	t.startRemaining = t.pausedRemaining
	t.pausedRemaining = 0
	t.running = true
	t.paused = false
	t.generation++
	t.scheduleAlert(t.phase, t.startRemaining)
}

// Stop finalizes the elapsed portion of the current phase into the daily
// totals and returns to idle. Manual stops never count as a completed
// session. A no-op when already idle.
func (t *PhaseTimer) Stop() {
	t.mu.Lock()
	if t.phase == model.PhaseIdle {
		t.mu.Unlock()
		return
	}
	now := t.clock()
	elapsed := t.totalSeconds - t.currentRemaining(now)
	phase := t.phase

	t.acc.RollIfNewDay(clockref.DayKey(now))
	t.acc.AddElapsed(phase, elapsed)

	t.generation++
	t.cancelPendingAlert()
	t.reset()
	t.mu.Unlock()

	t.push()
}

// Tick re-evaluates the countdown; it is driven roughly once per second
// while running. Reaching zero hands off to a deferred completion so the
// phase transition never runs inside the tick callback itself.
func (t *PhaseTimer) Tick() {
	t.mu.Lock()
	if !t.running || t.paused {
		t.mu.Unlock()
		return
	}
	if clockref.Remaining(t.startRef, t.startRemaining, t.clock()) > 0 {
		t.mu.Unlock()
		return
	}
	gen := t.generation
	t.mu.Unlock()

	t.scheduler.Schedule(0, func() { t.complete(gen) })
}

// complete finalizes a naturally finished phase and advances to the next
// one. Idempotent: a stale generation, a pause, or a stop in the window
// since the owning Tick makes it a no-op, so duplicate fires are harmless.
func (t *PhaseTimer) complete(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || !t.running || t.paused {
		t.mu.Unlock()
		return
	}
	now := t.clock()
	if clockref.Remaining(t.startRef, t.startRemaining, now) > 0 {
		t.mu.Unlock()
		return
	}

	phase := t.phase
	t.acc.RollIfNewDay(clockref.DayKey(now))
	t.acc.AddElapsed(phase, t.totalSeconds)

	next := model.PhaseFocus
	if phase == model.PhaseFocus {
		t.acc.IncrementSession()
		t.focusCompletions++
		if t.focusCompletions%model.FocusPhasesPerLongBreak == 0 {
			next = model.PhaseLongBreak
		} else {
			next = model.PhaseShortBreak
		}
	}

	t.generation++
	t.cancelPendingAlert()
	t.reset()
	t.mu.Unlock()

	t.push()
	t.Start(next, 0)
}

// Snapshot returns the current display state with remaining seconds
// computed against the clock.
func (t *PhaseTimer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := model.StatusIdle
	switch {
	case t.running:
		status = model.StatusRunning
	case t.paused:
		status = model.StatusPaused
	}
	return Snapshot{
		Phase:             t.phase,
		Status:            status,
		TotalPhaseSeconds: t.totalSeconds,
		RemainingSeconds:  t.currentRemaining(t.clock()),
	}
}

// currentRemaining must be called with the mutex held.
func (t *PhaseTimer) currentRemaining(now time.Time) int {
	switch {
	case t.running:
		return clockref.Remaining(t.startRef, t.startRemaining, now)
	case t.paused:
		return t.pausedRemaining
	default:
		return 0
	}
}

func (t *PhaseTimer) durationFor(phase string) int {
	switch phase {
	case model.PhaseShortBreak:
		return t.cfg.ShortBreakSeconds
	case model.PhaseLongBreak:
		return t.cfg.LongBreakSeconds
	default:
		return t.cfg.FocusSeconds
	}
}

func (t *PhaseTimer) scheduleAlert(phase string, seconds int) {
	if t.alerter == nil {
		return
	}
	t.cancelAlert = t.scheduler.Schedule(time.Duration(seconds)*time.Second, func() {
		t.alerter.PhaseComplete(phase)
	})
}

func (t *PhaseTimer) cancelPendingAlert() {
	if t.cancelAlert != nil {
		t.cancelAlert()
		t.cancelAlert = nil
	}
}

func (t *PhaseTimer) reset() {
	t.phase = model.PhaseIdle
	t.totalSeconds = 0
	t.startRef = time.Time{}
	t.startRemaining = 0
	t.pausedRemaining = 0
	t.running = false
	t.paused = false
}

func (t *PhaseTimer) push() {
	if t.pusher != nil {
		t.pusher.Push()
	}
}
