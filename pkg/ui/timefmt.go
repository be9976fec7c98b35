package ui

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a timestamp relative to now, picking the largest
// unit whose magnitude is at least one. Sub-minute gaps collapse to "just now".
func FormatRelativeTime(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)
	future := elapsed < 0
	if future {
		elapsed = -elapsed
	}

	type bucket struct {
		unit  time.Duration
		label string
	}
	buckets := []bucket{
		{365 * 24 * time.Hour, "y"},
		{30 * 24 * time.Hour, "mo"},
		{7 * 24 * time.Hour, "w"},
		{24 * time.Hour, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
	}

	for _, b := range buckets {
		if elapsed >= b.unit {
			n := int(elapsed / b.unit)
			if future {
				return fmt.Sprintf("in %d%s", n, b.label)
			}
			return fmt.Sprintf("%d%s ago", n, b.label)
		}
	}
	return "just now"
}

// SectionLabel buckets a conversation timestamp the way chat sidebars usually
// do. Days are counted on calendar boundaries in the local zone of now, so a
// conversation from 23:50 yesterday is "Yesterday" even ten minutes later.
func SectionLabel(t time.Time, now time.Time) string {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(startOfToday.Sub(t).Hours()/24) + 1
	if !t.Before(startOfToday) {
		days = 0
	}

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return "Previous 7 Days"
	case days < 30:
		return "Previous 30 Days"
	default:
		return t.Format("January 2006")
	}
}
