package bedtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Clock layouts accepted by TimeOfDay.Format.
const (
	Clock12 = "3:04 PM"
	Clock24 = "15:04"
)

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// At returns the time of day for h:m.
func At(h, m int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m}
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t := strings.TrimSpace(s)
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return At(h, m), nil
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// fromSeconds folds any second count onto a single day.
func fromSeconds(sec int) TimeOfDay {
	sec = mod(sec, secondsPerDay)
	return TimeOfDay{
		Hour:   sec / 3600,
		Minute: sec % 3600 / 60,
		Second: sec % 60,
	}
}

// Format renders the time with a Go time layout, normally Clock12 or Clock24.
func (t TimeOfDay) Format(layout string) string {
	if layout == "" {
		layout = Clock12
	}
	return time.Date(2000, time.January, 1, t.Hour, t.Minute, t.Second, 0, time.UTC).Format(layout)
}

// String returns the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
