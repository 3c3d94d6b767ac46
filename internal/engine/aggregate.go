package engine

import (
	"sort"
	"time"

	"github.com/hollisb/centsible/internal/model"
)

// Income returns the total of income transactions inside the period.
func Income(txns []model.Transaction, period model.Period, ref time.Time) float64 {
	return totalByType(txns, model.TypeIncome, period, ref)
}

// Expenses returns the total of expense transactions inside the period.
func Expenses(txns []model.Transaction, period model.Period, ref time.Time) float64 {
	return totalByType(txns, model.TypeExpense, period, ref)
}

func totalByType(txns []model.Transaction, txType model.TransactionType, period model.Period, ref time.Time) float64 {
	var total float64
	for _, txn := range FilterByPeriod(txns, period, ref) {
		if txn.Type == txType {
			total += txn.Amount
		}
	}
	return total
}

// CurrentBalance returns all-time income minus all-time expenses over
// the full, unfiltered transaction set. This is the running balance, not
// a period-scoped figure.
func CurrentBalance(txns []model.Transaction) float64 {
	var balance float64
	for _, txn := range txns {
		balance += txn.Signed()
	}
	return balance
}

// CategorySpending groups the period's transactions of one type by
// category and computes each group's share of the filtered total.
// Results are sorted descending by amount; ties keep first-appearance
// order. A transaction referencing a missing category is attributed to
// the Uncategorized placeholder rather than dropped.
func CategorySpending(txns []model.Transaction, categories []model.Category, txType model.TransactionType, period model.Period, ref time.Time) []model.CategorySpending {
	totals := make(map[string]float64)
	var order []string
	for _, txn := range FilterByPeriod(txns, period, ref) {
		if txn.Type != txType {
			continue
		}
		if _, seen := totals[txn.CategoryID]; !seen {
			order = append(order, txn.CategoryID)
		}
		totals[txn.CategoryID] += txn.Amount
	}

	var total float64
	for _, amount := range totals {
		total += amount
	}

	byID := indexCategories(categories)
	result := make([]model.CategorySpending, 0, len(order))
	for _, id := range order {
		amount := totals[id]
		var percentage float64
		if total > 0 {
			percentage = amount / total * 100
		}
		result = append(result, model.CategorySpending{
			Category:   resolveCategory(byID, id),
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// TopSpendingCategories returns the expense distribution truncated to
// the limit highest-spending categories.
func TopSpendingCategories(txns []model.Transaction, categories []model.Category, period model.Period, ref time.Time, limit int) []model.CategorySpending {
	spending := CategorySpending(txns, categories, model.TypeExpense, period, ref)
	if limit >= 0 && len(spending) > limit {
		spending = spending[:limit]
	}
	return spending
}

// CategoryByID looks up a category, returning nil when the id does not
// resolve.
func CategoryByID(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

func indexCategories(categories []model.Category) map[string]model.Category {
	byID := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}
	return byID
}

// resolveCategory degrades a dangling reference to the Uncategorized
// placeholder instead of failing.
func resolveCategory(byID map[string]model.Category, id string) model.Category {
	if cat, ok := byID[id]; ok {
		return cat
	}
	return model.Uncategorized()
}

// TransactionsByDate groups all transactions by calendar day, keyed
// YYYY-MM-DD. Groups are not sorted; ordering is left to the caller.
func TransactionsByDate(txns []model.Transaction) map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		key := txn.DayKey()
		groups[key] = append(groups[key], txn)
	}
	return groups
}

// TransactionsByMonth groups all transactions by calendar month, keyed
// YYYY-MM.
func TransactionsByMonth(txns []model.Transaction) map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		key := txn.MonthKey()
		groups[key] = append(groups[key], txn)
	}
	return groups
}

// TransactionsByCategory returns the period's transactions for a single
// category, income and expense alike.
func TransactionsByCategory(txns []model.Transaction, categoryID string, period model.Period, ref time.Time) []model.Transaction {
	matched := make([]model.Transaction, 0)
	for _, txn := range FilterByPeriod(txns, period, ref) {
		if txn.CategoryID == categoryID {
			matched = append(matched, txn)
		}
	}
	return matched
}

// TransactionsByDateRange returns transactions inside the closed
// interval [start, end].
func TransactionsByDateRange(txns []model.Transaction, start, end time.Time) []model.Transaction {
	matched := make([]model.Transaction, 0)
	for _, txn := range txns {
		if inRange(txn.Date, start, end) {
			matched = append(matched, txn)
		}
	}
	return matched
}

// RecentTransactions returns up to limit transactions, newest first.
func RecentTransactions(txns []model.Transaction, limit int) []model.Transaction {
	sorted := sortByDateDesc(txns)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TransactionsByPage returns one page of transactions sorted newest
// first. Pages are 1-based; an out-of-range page yields an empty slice.
func TransactionsByPage(txns []model.Transaction, page, limit int) []model.Transaction {
	if page < 1 || limit <= 0 {
		return nil
	}
	sorted := sortByDateDesc(txns)
	start := (page - 1) * limit
	if start >= len(sorted) {
		return nil
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// UnusedCategories returns the categories no transaction references.
func UnusedCategories(txns []model.Transaction, categories []model.Category) []model.Category {
	used := make(map[string]bool, len(txns))
	for _, txn := range txns {
		used[txn.CategoryID] = true
	}

	unused := make([]model.Category, 0)
	for _, cat := range categories {
		if !used[cat.ID] {
			unused = append(unused, cat)
		}
	}
	return unused
}

// sortByDateDesc copies txns and sorts the copy newest first, leaving
// the input untouched.
func sortByDateDesc(txns []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
