package engine

import (
	"time"

	"github.com/hollisb/centsible/internal/model"
)

// BudgetProgress joins each budget to the expense spend of its category
// inside the budget's own period. Output order follows input order. A
// budget whose category id no longer resolves is skipped entirely;
// over-budget entries (negative remaining, percentage above 100) pass
// through untouched.
func BudgetProgress(budgets []model.Budget, txns []model.Transaction, categories []model.Category, ref time.Time) []model.BudgetProgress {
	byID := indexCategories(categories)

	progress := make([]model.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		category, ok := byID[budget.CategoryID]
		if !ok {
			continue
		}

		var spent float64
		for _, txn := range FilterByPeriod(txns, budget.Period, ref) {
			if txn.Type == model.TypeExpense && txn.CategoryID == budget.CategoryID {
				spent += txn.Amount
			}
		}

		var percentage float64
		if budget.Amount > 0 {
			percentage = spent / budget.Amount * 100
		}

		progress = append(progress, model.BudgetProgress{
			Budget:     budget,
			Category:   category,
			Spent:      spent,
			Remaining:  budget.Amount - spent,
			Percentage: percentage,
		})
	}
	return progress
}
