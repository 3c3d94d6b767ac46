package engine

import (
	"fmt"
	"time"

	"github.com/hollisb/centsible/internal/model"
)

// Granularity selects the bucket size and point count of a category
// spending time series.
type Granularity string

const (
	// GranularityWeekly produces 7 daily points covering the last week.
	GranularityWeekly Granularity = "weekly"
	// GranularityMonthly produces 4 weekly points covering the last month.
	GranularityMonthly Granularity = "monthly"
	// GranularityQuarter produces 3 calendar-month points.
	GranularityQuarter Granularity = "3months"
	// GranularityHalfYear produces 6 calendar-month points.
	GranularityHalfYear Granularity = "6months"
	// GranularityYear produces 12 calendar-month points.
	GranularityYear Granularity = "yearly"
)

// Timeframe selects the window of an income-versus-expense comparison.
type Timeframe string

const (
	// TimeframeWeek compares the last 7 days, one point per day.
	TimeframeWeek Timeframe = "week"
	// TimeframeMonth compares the last 4 calendar weeks.
	TimeframeMonth Timeframe = "month"
	// TimeframeYear compares the last 6 calendar months.
	TimeframeYear Timeframe = "year"
)

// SpendingTrend returns the signed percentage change of the current
// period's expenses against the immediately preceding period of the same
// kind. By convention the result is +100 when the previous period had no
// expenses at all, so a first month of spending reads as full growth
// rather than a division blowup.
func SpendingTrend(txns []model.Transaction, period model.Period, ref time.Time) float64 {
	day := refDay(ref)
	current := Expenses(txns, period, day)

	start, end := previousPeriodBounds(period, day)
	var previous float64
	for _, txn := range txns {
		if txn.Type == model.TypeExpense && inRange(txn.Date, start, end) {
			previous += txn.Amount
		}
	}

	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

// timeBucket is one closed interval of a trend series.
type timeBucket struct {
	start time.Time
	end   time.Time
}

// CategorySpendingTrend builds a chart-ready expense time series for one
// category. Labels and data are parallel and always fully populated;
// buckets with no matching transactions carry 0 rather than being
// omitted.
func CategorySpendingTrend(txns []model.Transaction, categoryID string, granularity Granularity, ref time.Time) model.TrendSeries {
	day := refDay(ref)

	var labels []string
	var buckets []timeBucket

	switch granularity {
	case GranularityWeekly:
		// One point per day over the last 7 days.
		for i := 6; i >= 0; i-- {
			d := day.AddDate(0, 0, -i)
			labels = append(labels, d.Format("Mon"))
			buckets = append(buckets, timeBucket{start: d, end: endOfDay(d)})
		}
	case GranularityMonthly:
		// Four trailing week-wide windows, each ending i weeks back.
		// The windows are closed on both ends, so adjacent weeks share
		// a boundary day and an entry on it lands in both buckets.
		for i := 3; i >= 0; i-- {
			end := endOfDay(day.AddDate(0, 0, -i*7))
			labels = append(labels, fmt.Sprintf("Week %d", 4-i))
			buckets = append(buckets, timeBucket{start: startOfDay(end.AddDate(0, 0, -7)), end: end})
		}
	default:
		for i := monthPoints(granularity) - 1; i >= 0; i-- {
			start, end := monthBounds(day.AddDate(0, -i, 0))
			labels = append(labels, start.Format("Jan"))
			buckets = append(buckets, timeBucket{start: start, end: end})
		}
	}

	data := make([]float64, len(buckets))
	for i, bucket := range buckets {
		for _, txn := range txns {
			if txn.CategoryID == categoryID && txn.Type == model.TypeExpense && inRange(txn.Date, bucket.start, bucket.end) {
				data[i] += txn.Amount
			}
		}
	}

	return model.TrendSeries{Labels: labels, Data: data}
}

// monthPoints maps a month-bucketed granularity to its point count,
// defaulting to a quarter for anything unrecognized.
func monthPoints(granularity Granularity) int {
	switch granularity {
	case GranularityHalfYear:
		return 6
	case GranularityYear:
		return 12
	default:
		return 3
	}
}

// IncomeExpenseComparison produces a small series of income, expense and
// net figures: daily points over a week, weekly points over a month, or
// monthly points over half a year.
func IncomeExpenseComparison(txns []model.Transaction, timeframe Timeframe, ref time.Time) []model.IncomeExpensePoint {
	day := refDay(ref)

	var points []model.IncomeExpensePoint
	appendPoint := func(label string, period model.Period, anchor time.Time) {
		income := Income(txns, period, anchor)
		expense := Expenses(txns, period, anchor)
		points = append(points, model.IncomeExpensePoint{
			Label:   label,
			Income:  income,
			Expense: expense,
			Net:     income - expense,
		})
	}

	switch timeframe {
	case TimeframeWeek:
		for i := 6; i >= 0; i-- {
			d := day.AddDate(0, 0, -i)
			appendPoint(d.Format("Mon"), model.PeriodDaily, d)
		}
	case TimeframeMonth:
		for i := 3; i >= 0; i-- {
			weekStart := day.AddDate(0, 0, -i*7-int(day.Weekday()))
			appendPoint(fmt.Sprintf("Week %d", 4-i), model.PeriodWeekly, weekStart)
		}
	case TimeframeYear:
		for i := 5; i >= 0; i-- {
			m := day.AddDate(0, -i, 0)
			appendPoint(m.Format("Jan"), model.PeriodMonthly, m)
		}
	}
	return points
}
