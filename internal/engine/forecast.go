package engine

import (
	"time"

	"github.com/hollisb/centsible/internal/model"
)

// forecastWindowDays is the trailing window the expense average is
// drawn from, and the divisor for spreading monthly budgets over days.
const forecastWindowDays = 30

// ForecastExpenses projects expenses daysAhead days into the future from
// the trailing-30-day daily average plus a per-day share of all monthly
// budget commitments.
//
// TODO: budgeted spend that already shows up in the trailing actuals is
// counted twice here; needs a product decision before changing the
// formula.
func ForecastExpenses(txns []model.Transaction, budgets []model.Budget, daysAhead int, ref time.Time) float64 {
	if ref.IsZero() {
		ref = time.Now()
	}
	cutoff := ref.AddDate(0, 0, -forecastWindowDays)

	var recent float64
	for _, txn := range txns {
		if txn.Type == model.TypeExpense && !txn.Date.Before(cutoff) {
			recent += txn.Amount
		}
	}
	avgDaily := recent / forecastWindowDays

	var budgetTotal float64
	for _, budget := range budgets {
		if budget.Period == model.PeriodMonthly {
			budgetTotal += budget.Amount
		}
	}

	days := float64(daysAhead)
	return avgDaily*days + budgetTotal/forecastWindowDays*days
}

// SavingsRate returns the share of the period's income that was not
// spent, as a percentage. Zero income yields 0 rather than a division
// error.
func SavingsRate(txns []model.Transaction, period model.Period, ref time.Time) float64 {
	income := Income(txns, period, ref)
	if income == 0 {
		return 0
	}
	expenses := Expenses(txns, period, ref)
	return (income - expenses) / income * 100
}
