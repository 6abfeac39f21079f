// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

func TestElectionStatus(t *testing.T) {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "before start date",
			now:      time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC),
			expected: models.StatusUpcoming,
		},
		{
			name:     "instant before start",
			now:      start.Add(-time.Nanosecond),
			expected: models.StatusUpcoming,
		},
		{
			name:     "exactly at start",
			now:      start,
			expected: models.StatusOngoing,
		},
		{
			name:     "mid election",
			now:      time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: models.StatusOngoing,
		},
		{
			name: "after the end timestamp but still on the end date",
			// the stored end is 09:00; the whole calendar day stays votable
			now:      time.Date(2026, 6, 20, 23, 0, 0, 0, time.UTC),
			expected: models.StatusOngoing,
		},
		{
			name:     "last instant of the end date",
			now:      time.Date(2026, 6, 20, 23, 59, 59, 999999999, time.UTC),
			expected: models.StatusOngoing,
		},
		{
			name:     "first instant after the end date",
			now:      time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC),
			expected: models.StatusConcluded,
		},
		{
			name:     "well after end",
			now:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			expected: models.StatusConcluded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElectionStatus(tt.now, start, end)
			if got != tt.expected {
				t.Errorf("ElectionStatus(%v) = %q, want %q", tt.now, got, tt.expected)
			}
		})
	}
}

// The classifier must always yield exactly one of the three states.
func TestElectionStatusTotal(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	for offset := -48 * time.Hour; offset <= 96*time.Hour; offset += 3 * time.Hour {
		now := start.Add(offset)
		got := ElectionStatus(now, start, end)
		switch got {
		case models.StatusUpcoming, models.StatusOngoing, models.StatusConcluded:
		default:
			t.Fatalf("ElectionStatus(%v) returned unknown state %q", now, got)
		}
		// deterministic
		if again := ElectionStatus(now, start, end); again != got {
			t.Fatalf("ElectionStatus(%v) not deterministic: %q then %q", now, got, again)
		}
	}
}
