package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/hollisb/centsible/internal/model"
)

func TestValidateBudget(t *testing.T) {
	valid := model.Budget{CategoryID: "1", Period: model.PeriodMonthly, Amount: 100}

	tests := []struct {
		name    string
		mutate  func(*model.Budget)
		wantErr error
	}{
		{name: "valid", mutate: func(*model.Budget) {}, wantErr: nil},
		{name: "missing category", mutate: func(b *model.Budget) { b.CategoryID = "" }, wantErr: ErrInvalidBudget},
		{name: "zero amount", mutate: func(b *model.Budget) { b.Amount = 0 }, wantErr: ErrInvalidBudget},
		{name: "unscoped period", mutate: func(b *model.Budget) { b.Period = model.PeriodAll }, wantErr: ErrInvalidBudget},
		{name: "unknown period", mutate: func(b *model.Budget) { b.Period = "yearly" }, wantErr: ErrInvalidBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := valid
			tt.mutate(&budget)
			err := validateBudget(budget)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("got %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if err := validateCategory(model.Category{Name: "Pets", Type: model.TypeExpense}); err != nil {
		t.Errorf("valid category rejected: %v", err)
	}
	if err := validateCategory(model.Category{Name: "  ", Type: model.TypeExpense}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("blank name: got %v, want ErrInvalidCategory", err)
	}
	if err := validateCategory(model.Category{Name: "Pets", Type: "transfer"}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("unknown type: got %v, want ErrInvalidCategory", err)
	}
}

func TestValidateTransaction(t *testing.T) {
	valid := model.Transaction{
		Date:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local),
		CategoryID: "1",
		Type:       model.TypeExpense,
		Amount:     10,
	}
	if err := validateTransaction(valid); err != nil {
		t.Errorf("valid transaction rejected: %v", err)
	}

	invalid := valid
	invalid.Amount = -1
	if err := validateTransaction(invalid); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("negative amount: got %v, want ErrInvalidTransaction", err)
	}
}
