package scheduler

import "time"

// dateOnly truncates a timestamp to midnight UTC so that window and
// day-difference comparisons work on whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// occurrenceIn returns the date for a requested day-of-month within the
// given month, clamped to the month's length (day 31 in April becomes
// April 30).
func occurrenceIn(year int, month time.Month, day int) time.Time {
	if max := daysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nextMonth steps a (year, month) pair forward by one month.
func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// prevMonth steps a (year, month) pair back by one month.
func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextOccurrence returns the first occurrence of dayOfMonth on or after
// from. If the clamped day in from's month has already passed, the
// occurrence rolls to the following month.
func NextOccurrence(dayOfMonth int, from time.Time) time.Time {
	start := dateOnly(from)
	year, month := start.Year(), start.Month()
	occ := occurrenceIn(year, month, dayOfMonth)
	if occ.Before(start) {
		year, month = nextMonth(year, month)
		occ = occurrenceIn(year, month, dayOfMonth)
	}
	return occ
}

// occurrences lists every occurrence of dayOfMonth from NextOccurrence(asOf)
// up to, but not including, horizon.
func occurrences(dayOfMonth int, asOf, horizon time.Time) []time.Time {
	var out []time.Time
	occ := NextOccurrence(dayOfMonth, asOf)
	year, month := occ.Year(), occ.Month()
	for occ.Before(horizon) {
		out = append(out, occ)
		year, month = nextMonth(year, month)
		occ = occurrenceIn(year, month, dayOfMonth)
	}
	return out
}

// cycleStart returns the billing-cycle start for a due date: the same
// requested day-of-month in the previous calendar month, clamped. It is
// never clamped to "today", so a paycheck dated before the scheduling run
// can still fund a cycle it falls inside.
func cycleStart(due time.Time, dayOfMonth int) time.Time {
	year, month := prevMonth(due.Year(), due.Month())
	return occurrenceIn(year, month, dayOfMonth)
}
