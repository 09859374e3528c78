package vault

import "time"

// TimestampLayout is the wall-clock format stored inside note entries.
const TimestampLayout = "2006-01-02 03:04:05 PM"

// Clock supplies the formatted timestamp attached to a note at creation.
type Clock interface {
	Stamp() string
}

// ClockFunc adapts a bare function to the Clock interface.
type ClockFunc func() string

// Stamp executes the underlying function.
func (f ClockFunc) Stamp() string { return f() }

// NewLocationClock returns a Clock pinned to the given timezone.
func NewLocationClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return ClockFunc(func() string {
		return time.Now().In(loc).Format(TimestampLayout)
	})
}
