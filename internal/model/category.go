// Package model defines the core domain types shared across the application.
package model

// TransactionType indicates whether money flows in or out.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is a known value.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// UncategorizedID is the sentinel category id substituted when a
// transaction or budget references a category that no longer exists.
const UncategorizedID = "unknown"

// Category is a user-defined label used to classify transactions and budgets.
// Identity is immutable once created; categories are never auto-deleted, so
// dangling references degrade to the Uncategorized placeholder at read time.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Type  TransactionType `json:"type"`
}

// Uncategorized returns the placeholder category used for dangling
// category references.
func Uncategorized() Category {
	return Category{
		ID:    UncategorizedID,
		Name:  "Uncategorized",
		Icon:  "help-circle",
		Color: "#999999",
		Type:  TypeExpense,
	}
}
