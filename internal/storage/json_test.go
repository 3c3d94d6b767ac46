package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/model"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTransaction(amount float64, txnType model.TransactionType) model.Transaction {
	return model.Transaction{
		Date:        time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local),
		Description: "groceries",
		CategoryID:  "1",
		Type:        txnType,
		Amount:      amount,
	}
}

func TestJSONStore_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Categories) != 9 {
		t.Errorf("got %d categories, want 9 defaults", len(snap.Categories))
	}
	if len(snap.Accounts) != 1 {
		t.Fatalf("got %d accounts, want 1 default", len(snap.Accounts))
	}
	if snap.Accounts[0].Balance != 0 {
		t.Errorf("default balance: got %v, want 0", snap.Accounts[0].Balance)
	}
	if len(snap.Transactions) != 0 || len(snap.Budgets) != 0 {
		t.Errorf("fresh store must have no transactions or budgets")
	}

	// Seeded collections are written back so the next open reads bytes,
	// not the seeding path.
	for _, name := range []string{categoriesFile, accountsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("seeded file %s not written: %v", name, err)
		}
	}
}

func TestJSONStore_AddTransaction(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	added, err := store.AddTransaction(ctx, testTransaction(50, model.TypeExpense))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if added.ID == "" {
		t.Error("added transaction must get a fresh id")
	}

	if _, err := store.AddTransaction(ctx, testTransaction(200, model.TypeIncome)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(snap.Transactions))
	}
	if snap.Accounts[0].Balance != 150 {
		t.Errorf("balance: got %v, want 150", snap.Accounts[0].Balance)
	}
}

func TestJSONStore_AddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	tests := []struct {
		name   string
		mutate func(*model.Transaction)
	}{
		{name: "zero amount", mutate: func(txn *model.Transaction) { txn.Amount = 0 }},
		{name: "negative amount", mutate: func(txn *model.Transaction) { txn.Amount = -5 }},
		{name: "unknown type", mutate: func(txn *model.Transaction) { txn.Type = "transfer" }},
		{name: "zero date", mutate: func(txn *model.Transaction) { txn.Date = time.Time{} }},
		{name: "missing category", mutate: func(txn *model.Transaction) { txn.CategoryID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := testTransaction(10, model.TypeExpense)
			tt.mutate(&txn)
			if _, err := store.AddTransaction(ctx, txn); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	if _, err := store.AddTransaction(nil, testTransaction(10, model.TypeExpense)); err == nil { //nolint:staticcheck
		t.Error("expected error for nil context, got nil")
	}
}

func TestJSONStore_UpdateTransaction(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	added, err := store.AddTransaction(ctx, testTransaction(50, model.TypeExpense))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	updated := added
	updated.Amount = 80
	updated.Description = "bigger groceries"
	if err := store.UpdateTransaction(ctx, updated); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1 (update must replace, not append)", len(snap.Transactions))
	}
	if snap.Transactions[0].ID != added.ID {
		t.Errorf("id changed across update: %s -> %s", added.ID, snap.Transactions[0].ID)
	}
	if snap.Transactions[0].Amount != 80 {
		t.Errorf("amount: got %v, want 80", snap.Transactions[0].Amount)
	}
	if snap.Accounts[0].Balance != -80 {
		t.Errorf("balance after update: got %v, want -80", snap.Accounts[0].Balance)
	}

	missing := updated
	missing.ID = "no-such-id"
	if err := store.UpdateTransaction(ctx, missing); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestJSONStore_DeleteRestoresBalance(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	added, err := store.AddTransaction(ctx, testTransaction(75, model.TypeExpense))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := store.DeleteTransaction(ctx, added.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 0 {
		t.Errorf("got %d transactions, want 0", len(snap.Transactions))
	}
	if snap.Accounts[0].Balance != 0 {
		t.Errorf("balance after add+delete: got %v, want 0", snap.Accounts[0].Balance)
	}
}

func TestJSONStore_DeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	if _, err := store.AddTransaction(ctx, testTransaction(75, model.TypeExpense)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := store.DeleteTransaction(ctx, "no-such-id"); err != nil {
		t.Fatalf("delete of unknown id must be a no-op, got %v", err)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1 untouched", len(snap.Transactions))
	}
	if snap.Accounts[0].Balance != -75 {
		t.Errorf("balance: got %v, want -75 untouched", snap.Accounts[0].Balance)
	}
}

func TestJSONStore_SetBudgetUpserts(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	first, err := store.SetBudget(ctx, model.Budget{CategoryID: "1", Period: model.PeriodMonthly, Amount: 300})
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if first.ID == "" {
		t.Error("new budget must get a fresh id")
	}

	second, err := store.SetBudget(ctx, model.Budget{CategoryID: "1", Period: model.PeriodWeekly, Amount: 100})
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert changed the id: %s -> %s", first.ID, second.ID)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Budgets) != 1 {
		t.Fatalf("got %d budgets, want 1 (same category must overwrite)", len(snap.Budgets))
	}
	if snap.Budgets[0].Amount != 100 || snap.Budgets[0].Period != model.PeriodWeekly {
		t.Errorf("got %+v, want amount 100 / weekly", snap.Budgets[0])
	}

	if _, err := store.SetBudget(ctx, model.Budget{CategoryID: "2", Period: model.PeriodMonthly, Amount: 50}); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	snap, _ = store.Snapshot(ctx)
	if len(snap.Budgets) != 2 {
		t.Errorf("got %d budgets, want 2 after second category", len(snap.Budgets))
	}
}

func TestJSONStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	added, err := store.AddTransaction(ctx, testTransaction(42.50, model.TypeExpense))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := store.SetBudget(ctx, model.Budget{CategoryID: "1", Period: model.PeriodMonthly, Amount: 300}); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	snap, err := reopened.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("got %d transactions after reopen, want 1", len(snap.Transactions))
	}
	got := snap.Transactions[0]
	if got.ID != added.ID || got.Amount != 42.50 || got.Description != "groceries" ||
		got.CategoryID != "1" || got.Type != model.TypeExpense {
		t.Errorf("transaction did not round-trip: %+v", got)
	}
	if !got.Date.Equal(added.Date) {
		t.Errorf("date did not round-trip: got %v, want %v", got.Date, added.Date)
	}
	if len(snap.Budgets) != 1 || snap.Budgets[0].Amount != 300 {
		t.Errorf("budget did not round-trip: %+v", snap.Budgets)
	}
	if snap.Accounts[0].Balance != -42.50 {
		t.Errorf("balance after reopen: got %v, want -42.50", snap.Accounts[0].Balance)
	}
}

func TestJSONStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	if _, err := store.AddTransaction(ctx, testTransaction(10, model.TypeExpense)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	snap.Transactions[0].Amount = 9999
	snap.Accounts[0].Balance = 9999

	fresh, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if fresh.Transactions[0].Amount != 10 {
		t.Errorf("mutating a snapshot leaked into the store")
	}
	if fresh.Accounts[0].Balance != -10 {
		t.Errorf("mutating a snapshot's accounts leaked into the store")
	}
}

func TestJSONStore_FailedSaveRollsBackState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	added, err := store.AddTransaction(ctx, testTransaction(50, model.TypeExpense))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	// Removing the data directory makes every subsequent write fail.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}

	if _, err := store.AddTransaction(ctx, testTransaction(30, model.TypeExpense)); err == nil {
		t.Fatal("expected save failure, got nil")
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1 (failed add must not stick)", len(snap.Transactions))
	}
	if snap.Accounts[0].Balance != -50 {
		t.Errorf("balance: got %v, want -50 (failed add must not move the balance)", snap.Accounts[0].Balance)
	}

	if err := store.DeleteTransaction(ctx, added.ID); err == nil {
		t.Fatal("expected save failure on delete, got nil")
	}
	snap, _ = store.Snapshot(ctx)
	if len(snap.Transactions) != 1 || snap.Accounts[0].Balance != -50 {
		t.Errorf("failed delete must leave state untouched: %d transactions, balance %v",
			len(snap.Transactions), snap.Accounts[0].Balance)
	}
}

func TestJSONStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, transactionsFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewJSONStore(dir); !errors.Is(err, common.ErrStorageCorrupted) {
		t.Errorf("got %v, want ErrStorageCorrupted", err)
	}
}

func TestJSONStore_AddCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestJSONStore(t)

	added, err := store.AddCategory(ctx, model.Category{Name: "Pets", Icon: "paw", Color: "#8B4513", Type: model.TypeExpense})
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if added.ID == "" {
		t.Error("added category must get a fresh id")
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Categories) != 10 {
		t.Errorf("got %d categories, want 10 (9 defaults plus one)", len(snap.Categories))
	}
}
