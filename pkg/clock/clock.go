// Package clock supplies the current time. Search windows, listings and
// reschedule selection all read "now" through it.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the process's local zone.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
