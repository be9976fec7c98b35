package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds collapse", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days", now.Add(-26 * time.Hour), "1d ago"},
		{"weeks", now.Add(-8 * 24 * time.Hour), "1w ago"},
		{"months", now.Add(-45 * 24 * time.Hour), "1mo ago"},
		{"years", now.Add(-400 * 24 * time.Hour), "1y ago"},
		{"future", now.Add(10 * time.Minute), "in 10m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRelativeTime(tc.t, now))
		})
	}
}

func TestSectionLabel(t *testing.T) {
	// local midnight matters, so pin the zone
	now := time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"this morning", time.Date(2025, 10, 4, 1, 0, 0, 0, time.UTC), "Today"},
		{"late last night", time.Date(2025, 10, 3, 23, 50, 0, 0, time.UTC), "Yesterday"},
		{"three days back", now.Add(-3 * 24 * time.Hour), "Previous 7 Days"},
		{"two weeks back", now.Add(-14 * 24 * time.Hour), "Previous 30 Days"},
		{"months back", time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC), "July 2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SectionLabel(tc.t, now))
		})
	}
}
