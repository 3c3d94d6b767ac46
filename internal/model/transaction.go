package model

import "time"

// Transaction is a single income or expense entry in the ledger.
// Amount is always stored positive; the sign is implied by Type.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
}

// Signed returns the amount with the sign implied by the transaction
// type: positive for income, negative for expense.
func (t Transaction) Signed() float64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// DayKey returns the transaction's calendar day as YYYY-MM-DD in local
// time, ignoring the time-of-day component.
func (t Transaction) DayKey() string {
	return t.Date.Format("2006-01-02")
}

// MonthKey returns the transaction's calendar month as YYYY-MM.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
