package model

// Period is a named calendar window relative to a reference date.
type Period string

const (
	// PeriodDaily scopes to the reference date's calendar day.
	PeriodDaily Period = "daily"
	// PeriodWeekly scopes to the calendar week (Sunday through Saturday)
	// containing the reference date.
	PeriodWeekly Period = "weekly"
	// PeriodMonthly scopes to the reference date's calendar month.
	PeriodMonthly Period = "monthly"
	// PeriodAll applies no time scoping at all.
	PeriodAll Period = ""
)

// Valid reports whether the period is one of the named windows or the
// unscoped default.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAll:
		return true
	}
	return false
}

// Budget is a recurring spending ceiling for one category. At most one
// budget per category is meaningful: setting a budget for a category
// that already has one overwrites amount and period in place, keeping
// the original id.
type Budget struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	Period     Period  `json:"period"`
	Amount     float64 `json:"amount"`
}
