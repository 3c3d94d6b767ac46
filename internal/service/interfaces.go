// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/hollisb/centsible/internal/model"
)

// Store defines the contract for our persistence layer: the single
// source of mutable truth for the ledger. Reads hand out immutable
// snapshots; the aggregation engine never talks to the store directly.
type Store interface {
	// Snapshot returns a copy of the current state of all four
	// collections. Callers may hold and read it freely; it never
	// changes under them.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	// AddTransaction assigns a fresh unique id, appends the transaction
	// to the ledger, and applies its signed amount to the default
	// account's balance. The stored transaction is returned.
	AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error)

	// UpdateTransaction replaces the transaction with the same id in
	// place, adjusting the default account by the delta between the old
	// and new entries. The id is preserved across edits.
	UpdateTransaction(ctx context.Context, txn model.Transaction) error

	// DeleteTransaction removes a transaction and reverses its effect
	// on the default account's balance. Deleting an unknown id is a
	// silent no-op.
	DeleteTransaction(ctx context.Context, id string) error

	// AddCategory assigns a fresh unique id and appends the category.
	AddCategory(ctx context.Context, category model.Category) (model.Category, error)

	// SetBudget upserts a budget by category id: an existing budget for
	// that category has its amount and period overwritten in place,
	// keeping its id; otherwise a new budget is inserted with a fresh
	// id.
	SetBudget(ctx context.Context, budget model.Budget) (model.Budget, error)

	// Close releases any underlying resources.
	Close() error
}
