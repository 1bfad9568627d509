// ABOUTME: Small shared helpers for CLI date parsing and table formatting.
// ABOUTME: Dates are day-granular; times within a day come from created_at.
package main

import (
	"fmt"
	"time"
)

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return truncate(s, width)
	}
	for len(s) < width {
		s += " "
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
