package storage

import "github.com/hollisb/centsible/internal/model"

// DefaultCategories returns the category set seeded into an empty store
// on first startup.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "1", Name: "Food", Icon: "food", Color: "#FF5733", Type: model.TypeExpense},
		{ID: "2", Name: "Transport", Icon: "car", Color: "#3498DB", Type: model.TypeExpense},
		{ID: "3", Name: "Housing", Icon: "home", Color: "#2ECC71", Type: model.TypeExpense},
		{ID: "4", Name: "Entertainment", Icon: "movie", Color: "#9B59B6", Type: model.TypeExpense},
		{ID: "5", Name: "Healthcare", Icon: "medical", Color: "#E74C3C", Type: model.TypeExpense},
		{ID: "6", Name: "Utilities", Icon: "flash", Color: "#F39C12", Type: model.TypeExpense},
		{ID: "7", Name: "Salary", Icon: "cash", Color: "#27AE60", Type: model.TypeIncome},
		{ID: "8", Name: "Investment", Icon: "trending-up", Color: "#16A085", Type: model.TypeIncome},
		{ID: "9", Name: "Gifts", Icon: "gift", Color: "#8E44AD", Type: model.TypeIncome},
	}
}

// DefaultAccount returns the single zero-balance account seeded into an
// empty store. Every transaction's signed amount accumulates here.
func DefaultAccount() model.Account {
	return model.Account{ID: "1", Name: "Main Account", Balance: 0}
}
