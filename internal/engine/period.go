// Package engine implements the aggregation and derived-metrics layer:
// pure functions that turn a snapshot of transactions, categories and
// budgets into the view models the presentation layer renders. No
// function here mutates its inputs.
package engine

import (
	"time"

	"github.com/hollisb/centsible/internal/model"
)

// FilterByPeriod returns the transactions whose date falls inside the
// named period relative to ref, in their original relative order. A zero
// ref means "now". Period boundaries use local calendar time at day
// granularity. An unscoped period passes every transaction through.
func FilterByPeriod(txns []model.Transaction, period model.Period, ref time.Time) []model.Transaction {
	day := refDay(ref)

	filtered := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if inPeriod(txn.Date, period, day) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}

// inPeriod reports whether date falls in the period anchored at day
// (which must already be truncated to midnight).
func inPeriod(date time.Time, period model.Period, day time.Time) bool {
	switch period {
	case model.PeriodDaily:
		return sameDay(date, day)
	case model.PeriodWeekly:
		// Closed calendar week: Sunday 00:00:00 through Saturday
		// 23:59:59.999999999 local time.
		start, end := weekBounds(day)
		return !date.Before(start) && !date.After(end)
	case model.PeriodMonthly:
		return date.Month() == day.Month() && date.Year() == day.Year()
	default:
		return true
	}
}

// refDay resolves a reference time to the midnight of its calendar day,
// substituting the current time for a zero value.
func refDay(ref time.Time) time.Time {
	if ref.IsZero() {
		ref = time.Now()
	}
	return startOfDay(ref)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}

// weekBounds returns the closed interval of the calendar week containing
// day, starting on Sunday.
func weekBounds(day time.Time) (start, end time.Time) {
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = endOfDay(start.AddDate(0, 0, 6))
	return start, end
}

// monthBounds returns the closed interval of the calendar month
// containing day.
func monthBounds(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	end = endOfDay(start.AddDate(0, 1, -1))
	return start, end
}

// previousPeriodBounds returns the closed interval of the period
// immediately preceding the one containing day: the previous calendar
// day, the 7 days ending the day before day, or the full previous
// calendar month. The interval degenerates to [day, day] for an
// unscoped period.
func previousPeriodBounds(period model.Period, day time.Time) (start, end time.Time) {
	switch period {
	case model.PeriodDaily:
		yesterday := day.AddDate(0, 0, -1)
		return yesterday, endOfDay(yesterday)
	case model.PeriodWeekly:
		return day.AddDate(0, 0, -7), endOfDay(day.AddDate(0, 0, -1))
	case model.PeriodMonthly:
		currentStart, _ := monthBounds(day)
		return monthBounds(currentStart.AddDate(0, 0, -1))
	default:
		return day, day
	}
}

// inRange reports whether date falls inside the closed interval
// [start, end].
func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
