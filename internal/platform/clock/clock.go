package clock

import "time"

// Clock abstracts time to keep engines deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Day keys such as habit dates
// are derived from the local calendar, so no UTC conversion happens here.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Millis returns t as epoch milliseconds, the unit persisted for timestamps.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// DayKey formats t as the YYYY-MM-DD key used by due dates and habit days.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
