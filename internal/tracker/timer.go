package tracker

import "time"

// TimerKind identifies what an expired timer does.
type TimerKind int

const (
	// TimerHideCelebration clears the celebration banner.
	TimerHideCelebration TimerKind = iota
	// TimerShowReview opens the review prompt.
	TimerShowReview
)

func (k TimerKind) String() string {
	return [...]string{"hide-celebration", "show-review"}[k]
}

// Timer is a delayed effect armed by entering a stage. The caller owns the clock:
// it waits Delay and hands the timer back to Tracker.Fire. Generation ties the
// timer to the stage entry that armed it.
type Timer struct {
	Kind       TimerKind
	Delay      time.Duration
	Generation uint64
}
