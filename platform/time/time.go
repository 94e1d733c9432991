// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Unix returns t as epoch seconds; zero t means now
func Unix(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.Unix()
}

// FromUnix converts epoch seconds to a UTC time
func FromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

// UTS formats epoch seconds as "2006-01-02T15:04:05Z"; 0 yields ""
func UTS(ts int64) string {
	if ts == 0 {
		return ""
	}
	return FromUnix(ts).Format("2006-01-02T15:04:05Z")
}
