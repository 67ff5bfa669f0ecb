package queries

import "time"

// Clock returns the current time; a nil Clock reads time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
