package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"focusband/companion/internal/clockref"
	"focusband/companion/internal/model"
	"focusband/companion/internal/replicate"
	"focusband/companion/internal/timer"
	"focusband/companion/internal/transport"
)

var (
	deviceToken       string
	focusSeconds      int
	shortBreakSeconds int
	longBreakSeconds  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the focus timer interactively",
	Long: `Run the countdown loop. Commands on stdin:

  start [focus|short_break|long_break]   begin a phase (default focus)
  pause | resume | stop                  control the running phase
  status                                 show phase, remaining, daily totals
  quit                                   exit

Without --token the timer runs locally and nothing is pushed.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		acc := timer.NewDailyAccumulator(clockref.DayKey(time.Now()))

		var repl *replicate.Replicator
		if deviceToken != "" {
			client := transport.NewClient(serverURL, deviceToken)
			repl = replicate.NewReplicator(acc, client, nil)
		} else {
			repl = replicate.NewReplicator(acc, nil, nil)
			log.Println("no token given, running without replication")
		}

		phaseTimer := timer.NewPhaseTimer(
			timer.Config{
				FocusSeconds:      focusSeconds,
				ShortBreakSeconds: shortBreakSeconds,
				LongBreakSeconds:  longBreakSeconds,
			},
			nil,
			timer.AfterFuncScheduler{},
			logAlerter{},
			acc,
			repl,
		)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-ticker.C:
					phaseTimer.Tick()
				case <-done:
					return
				}
			}
		}()
		defer close(done)

		fmt.Println("ready; type start / pause / resume / stop / status / quit")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "start":
				phase := model.PhaseFocus
				if len(fields) > 1 {
					phase = fields[1]
				}
				phaseTimer.Start(phase, 0)
			case "pause":
				phaseTimer.Pause()
			case "resume":
				phaseTimer.Resume()
			case "stop":
				phaseTimer.Stop()
			case "status":
				printStatus(phaseTimer, acc)
			case "quit", "exit":
				phaseTimer.Stop()
				return nil
			default:
				fmt.Printf("unknown command %q\n", fields[0])
			}
		}
		return scanner.Err()
	},
}

func printStatus(phaseTimer *timer.PhaseTimer, acc *timer.DailyAccumulator) {
	snap := phaseTimer.Snapshot()
	totals := acc.Totals()
	fmt.Printf("%s (%s) remaining %02d:%02d\n",
		snap.Phase, snap.Status, snap.RemainingSeconds/60, snap.RemainingSeconds%60)
	fmt.Printf("today %s: focus %dm break %dm sessions %d\n",
		totals.DayKey, totals.FocusSeconds/60, totals.BreakSeconds/60, totals.Sessions)
}

// logAlerter is the wristd stand-in for the haptic/notification cue.
type logAlerter struct{}

func (logAlerter) PhaseComplete(phase string) {
	switch phase {
	case model.PhaseFocus:
		log.Println("focus complete, time for a break")
	case model.PhaseShortBreak, model.PhaseLongBreak:
		log.Println("break over, back to focus")
	}
}

func init() {
	runCmd.Flags().StringVar(&deviceToken, "token", "", "bearer token from `wristd pair`")
	runCmd.Flags().IntVar(&focusSeconds, "focus", model.DefaultFocusDurationSeconds, "focus phase length in seconds")
	runCmd.Flags().IntVar(&shortBreakSeconds, "short-break", model.DefaultShortBreakDurationSeconds, "short break length in seconds")
	runCmd.Flags().IntVar(&longBreakSeconds, "long-break", model.DefaultLongBreakDurationSeconds, "long break length in seconds")
}
