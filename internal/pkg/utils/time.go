package utils

import (
	"fmt"
	"time"
)

var queryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DayRange returns the start of the day containing t and the start of the
// next day, both in t's location.
func DayRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 7*60*60)
	}
	return loc
}

// ParseQueryTime accepts RFC 3339, a zone-less date-time or a plain date.
func ParseQueryTime(value string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", value)
}
