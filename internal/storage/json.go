package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/model"
)

// Collection file names. These JSON snapshots are the durable form of
// the ledger and must round-trip field-for-field across save/load.
const (
	transactionsFile = "transactions.json"
	categoriesFile   = "categories.json"
	budgetsFile      = "budgets.json"
	accountsFile     = "accounts.json"
)

// JSONStore implements the Store interface with JSON snapshot files, one
// per collection, under a single data directory. The whole state lives
// in memory; every mutation rewrites the affected collection files.
type JSONStore struct {
	dir   string
	mu    sync.RWMutex
	state model.Snapshot
}

// NewJSONStore opens (or initializes) a JSON-backed store in dir. Absent
// collection files seed the default category set and a single
// zero-balance account, which are written back immediately so the first
// load and every later one see the same bytes.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &JSONStore{dir: dir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads all four collections, seeding defaults for missing files.
func (s *JSONStore) load() error {
	if err := s.loadCollection(transactionsFile, &s.state.Transactions, nil); err != nil {
		return err
	}
	if err := s.loadCollection(categoriesFile, &s.state.Categories, func() error {
		s.state.Categories = DefaultCategories()
		return s.saveCollection(categoriesFile, s.state.Categories)
	}); err != nil {
		return err
	}
	if err := s.loadCollection(budgetsFile, &s.state.Budgets, nil); err != nil {
		return err
	}
	if err := s.loadCollection(accountsFile, &s.state.Accounts, func() error {
		s.state.Accounts = []model.Account{DefaultAccount()}
		return s.saveCollection(accountsFile, s.state.Accounts)
	}); err != nil {
		return err
	}

	slog.Debug("loaded store",
		"dir", s.dir,
		"transactions", len(s.state.Transactions),
		"categories", len(s.state.Categories),
		"budgets", len(s.state.Budgets),
		"accounts", len(s.state.Accounts))
	return nil
}

// loadCollection unmarshals one collection file into dst. A missing file
// runs seed when provided, otherwise leaves dst empty.
func (s *JSONStore) loadCollection(name string, dst any, seed func() error) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		if seed != nil {
			return seed()
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrStorageCorrupted, name, err)
	}
	return nil
}

// saveCollection writes one collection atomically: marshal to a temp
// file in the same directory, then rename over the target.
func (s *JSONStore) saveCollection(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *JSONStore) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.state), nil
}

// AddTransaction appends a transaction with a fresh id and applies its
// signed amount to the default account.
func (s *JSONStore) AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return model.Transaction{}, err
	}
	if err := validateTransaction(txn); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := copySnapshot(s.state)
	txn.ID = uuid.NewString()
	s.state.Transactions = append(s.state.Transactions, txn)
	s.adjustDefaultAccount(txn.Signed())

	if err := s.saveLedger(prev); err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("added transaction", "id", txn.ID, "type", txn.Type, "amount", txn.Amount)
	return txn, nil
}

// UpdateTransaction replaces the entry with the same id in place,
// keeping the id stable across edits and adjusting the account by the
// delta of the signed amounts.
func (s *JSONStore) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(txn.ID, "id"); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.state.Transactions {
		if existing.ID != txn.ID {
			continue
		}
		prev := copySnapshot(s.state)
		s.state.Transactions[i] = txn
		s.adjustDefaultAccount(txn.Signed() - existing.Signed())
		return s.saveLedger(prev)
	}
	return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrNotFound)
}

// DeleteTransaction removes a transaction and reverses its balance
// effect. Unknown ids are ignored.
func (s *JSONStore) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.state.Transactions {
		if existing.ID != id {
			continue
		}
		prev := copySnapshot(s.state)
		s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
		s.adjustDefaultAccount(-existing.Signed())
		return s.saveLedger(prev)
	}

	slog.Debug("delete of unknown transaction ignored", "id", id)
	return nil
}

// AddCategory appends a category with a fresh id.
func (s *JSONStore) AddCategory(ctx context.Context, category model.Category) (model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return model.Category{}, err
	}
	if err := validateCategory(category); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Categories
	category.ID = uuid.NewString()
	s.state.Categories = append(s.state.Categories, category)
	if err := s.saveCollection(categoriesFile, s.state.Categories); err != nil {
		s.state.Categories = prev
		return model.Category{}, err
	}
	return category, nil
}

// SetBudget upserts by category id. An existing budget keeps its id and
// has amount and period overwritten; otherwise a new budget is inserted.
func (s *JSONStore) SetBudget(ctx context.Context, budget model.Budget) (model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return model.Budget{}, err
	}
	if err := validateBudget(budget); err != nil {
		return model.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := make([]model.Budget, len(s.state.Budgets))
	copy(prev, s.state.Budgets)

	for i, existing := range s.state.Budgets {
		if existing.CategoryID != budget.CategoryID {
			continue
		}
		existing.Amount = budget.Amount
		existing.Period = budget.Period
		s.state.Budgets[i] = existing
		if err := s.saveCollection(budgetsFile, s.state.Budgets); err != nil {
			s.state.Budgets = prev
			return model.Budget{}, err
		}
		return existing, nil
	}

	budget.ID = uuid.NewString()
	s.state.Budgets = append(s.state.Budgets, budget)
	if err := s.saveCollection(budgetsFile, s.state.Budgets); err != nil {
		s.state.Budgets = prev
		return model.Budget{}, err
	}
	return budget, nil
}

// Close is a no-op for the file-backed store; every mutation is already
// durable by the time it returns.
func (s *JSONStore) Close() error {
	return nil
}

// saveLedger persists the transaction and account collections, which
// every ledger mutation changes together. On any failure the in-memory
// state is rolled back to prev and the transactions file rewritten to
// match, so state and files never disagree with each other. Callers
// must hold the write lock.
func (s *JSONStore) saveLedger(prev model.Snapshot) error {
	if err := s.saveCollection(transactionsFile, s.state.Transactions); err != nil {
		s.state = prev
		return err
	}
	if err := s.saveCollection(accountsFile, s.state.Accounts); err != nil {
		s.state = prev
		if rbErr := s.saveCollection(transactionsFile, s.state.Transactions); rbErr != nil {
			slog.Error("failed to roll back transactions file", "error", rbErr)
		}
		return err
	}
	return nil
}

// adjustDefaultAccount applies a signed delta to the first account.
// Callers must hold the write lock.
func (s *JSONStore) adjustDefaultAccount(delta float64) {
	if len(s.state.Accounts) == 0 {
		s.state.Accounts = []model.Account{DefaultAccount()}
	}
	s.state.Accounts[0].Balance += delta
}

func copySnapshot(state model.Snapshot) model.Snapshot {
	out := model.Snapshot{
		Transactions: make([]model.Transaction, len(state.Transactions)),
		Categories:   make([]model.Category, len(state.Categories)),
		Budgets:      make([]model.Budget, len(state.Budgets)),
		Accounts:     make([]model.Account, len(state.Accounts)),
	}
	copy(out.Transactions, state.Transactions)
	copy(out.Categories, state.Categories)
	copy(out.Budgets, state.Budgets)
	copy(out.Accounts, state.Accounts)
	return out
}
