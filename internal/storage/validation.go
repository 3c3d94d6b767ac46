// Package storage provides the data persistence layer for the centsible application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hollisb/centsible/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidBudget      = errors.New("invalid budget")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction checks the fields callers must supply; the id is
// assigned by the store on insert.
func validateTransaction(txn model.Transaction) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidTransaction, txn.Amount)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.CategoryID == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	return nil
}

// validateCategory checks the fields callers must supply.
func validateCategory(category model.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !category.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, category.Type)
	}
	return nil
}

// validateBudget checks the fields callers must supply. Budgets require
// one of the named recurring periods; an unscoped budget is meaningless.
func validateBudget(budget model.Budget) error {
	if budget.CategoryID == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	if budget.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidBudget, budget.Amount)
	}
	if budget.Period == model.PeriodAll || !budget.Period.Valid() {
		return fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, budget.Period)
	}
	return nil
}
