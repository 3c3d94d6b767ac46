package model

// CategorySpending is one slice of a category distribution: the summed
// amount for a category and its share of the filtered set's total for
// that transaction type. Percentage is 0 when the total is 0.
type CategorySpending struct {
	Category   Category
	Amount     float64
	Percentage float64
}

// BudgetProgress reports how far spending has progressed against one
// budget within the budget's own period. Remaining may be negative and
// Percentage may exceed 100 when spending passed the ceiling; that is
// the over-budget signal, not an error state.
type BudgetProgress struct {
	Budget     Budget
	Category   Category
	Spent      float64
	Remaining  float64
	Percentage float64
}

// TrendSeries is a chart-ready time series: Labels and Data are parallel
// slices of equal length, one entry per time bucket, with 0 for buckets
// that matched no transactions.
type TrendSeries struct {
	Labels []string
	Data   []float64
}

// IncomeExpensePoint is one bucket of an income-versus-expense
// comparison series.
type IncomeExpensePoint struct {
	Label   string
	Income  float64
	Expense float64
	Net     float64
}
