// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// ElectionStatus classifies an election relative to now. The end date is
// normalized to the last instant of its calendar day, so an election
// "ending" on a date stays votable through all of that day. Applied
// uniformly; this is the only place the comparison lives.
func ElectionStatus(now, startDate, endDate time.Time) string {
	if now.Before(startDate) {
		return models.StatusUpcoming
	}
	if now.After(endOfDay(endDate)) {
		return models.StatusConcluded
	}
	return models.StatusOngoing
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
