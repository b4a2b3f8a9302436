// Package growth evaluates fixed-duration timers for crops, trees and animal
// product accrual. Evaluation is pure: callers supply the authoritative clock
// (the transaction time), never a client-reported one.
package growth

import "time"

// Status is the result of evaluating a timer.
type Status struct {
	Ready            bool          `json:"ready"`
	Remaining        time.Duration `json:"-"`
	RemainingMinutes int           `json:"remaining_minutes"`
}

// Evaluate returns the timer state for something started at start with the
// given fixed duration, as of now. Elapsed time exactly equal to the duration
// counts as ready. Remaining time is reported rounded up to whole minutes.
func Evaluate(start time.Time, duration time.Duration, now time.Time) Status {
	elapsed := now.Sub(start)
	if elapsed >= duration {
		return Status{Ready: true}
	}
	remaining := duration - elapsed
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	return Status{
		Ready:            false,
		Remaining:        remaining,
		RemainingMinutes: minutes,
	}
}
