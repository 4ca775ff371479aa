package services

import (
	"time"

	"fedha/internal/core"
)

// NextDueDate advances a bill's due date by one period. Monthly and
// yearly steps clamp to the last day of the target month, so a bill due
// on the 31st lands on the 30th or 28th instead of rolling over.
func NextDueDate(from time.Time, f core.Frequency) time.Time {
	y, m, d := from.Date()
	switch f {
	case core.Daily:
		return from.AddDate(0, 0, 1)
	case core.Weekly:
		return from.AddDate(0, 0, 7)
	case core.Monthly:
		return clampedDate(y, m+1, d)
	case core.Yearly:
		return clampedDate(y+1, m, d)
	}
	return from.AddDate(0, 1, 0)
}

// NextDueDateAfter repeats NextDueDate until the result lands strictly
// after the given day. A bill overdue by several periods advances past
// all of them instead of firing once per period.
func NextDueDateAfter(from time.Time, f core.Frequency, day time.Time) time.Time {
	next := NextDueDate(from, f)
	for !next.After(day) {
		next = NextDueDate(next, f)
	}
	return next
}

func clampedDate(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
