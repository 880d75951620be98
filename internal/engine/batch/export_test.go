package batch

import "time"

// SetClock replaces the run identifier source and the clock.
func SetClock(r *Runner, newID func() string, now func() time.Time) {
	r.newID = newID
	r.now = now
}
