package service

import "time"

// Clock supplies the current time to date-sensitive rules
type Clock func() time.Time

// SystemClock reads the wall clock in the store's timezone
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
