package domain

import "fmt"

// Snapshot is what subscribers receive after every state change. Seq grows
// strictly so consumers can drop out-of-order deliveries.
type Snapshot struct {
	State        State
	TotalSeconds int
	Seq          uint64
	Transition   *Transition
}

// Clock renders seconds as MM:SS; minutes grow past two digits when needed.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func Title(seconds int) string {
	return Clock(seconds) + " - Pomodoro Timer"
}
