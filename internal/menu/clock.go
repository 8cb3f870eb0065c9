package menu

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision. It carries no date and
// no timezone; all comparisons are against the server's local wall clock.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime builds a ClockTime, returning an error for out-of-range parts.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// MustClockTime is NewClockTime for compile-time-known values (tests, defaults).
func MustClockTime(hour, minute int) ClockTime {
	ct, err := NewClockTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return ct
}

// ParseClockTime accepts "15:04" or "15:04:05"; seconds are discarded.
func ParseClockTime(s string) (ClockTime, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err = time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
}

// ClockTimeOf truncates a full timestamp to its local time of day.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t ClockTime) minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t ClockTime) Before(other ClockTime) bool {
	return t.minutes() < other.minutes()
}

// After reports whether t is strictly later in the day than other.
func (t ClockTime) After(other ClockTime) bool {
	return t.minutes() > other.minutes()
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ct, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = ct
	return nil
}

// nowFunc is swapped out in tests to pin the evaluation instant.
var nowFunc = time.Now

// Now returns the current local time of day. The engines themselves never
// call this; only outermost callers (handlers) default to it.
func Now() ClockTime {
	return ClockTimeOf(nowFunc())
}
