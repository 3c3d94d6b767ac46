package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Store interface using SQLite. Ledger and
// account balance are always mutated inside the same SQL transaction so
// they cannot drift apart.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Snapshot reads all four collections into an immutable state value.
func (s *SQLiteStorage) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	var snap model.Snapshot
	var err error
	if snap.Transactions, err = s.getTransactions(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Categories, err = s.getCategories(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Budgets, err = s.getBudgets(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Accounts, err = s.getAccounts(ctx); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

func (s *SQLiteStorage) getTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, description, date, category_id, type
		FROM transactions
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txnType string
		if err := rows.Scan(&txn.ID, &txn.Amount, &txn.Description, &txn.Date, &txn.CategoryID, &txnType); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(txnType)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

func (s *SQLiteStorage) getCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color, type
		FROM categories
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var catType string
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color, &catType); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Type = model.TransactionType(catType)
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (s *SQLiteStorage) getBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, amount, period
		FROM budgets
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var budget model.Budget
		var period string
		if err := rows.Scan(&budget.ID, &budget.CategoryID, &budget.Amount, &period); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budget.Period = model.Period(period)
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (s *SQLiteStorage) getAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, balance
		FROM accounts
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var acct model.Account
		if err := rows.Scan(&acct.ID, &acct.Name, &acct.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// AddTransaction inserts a transaction with a fresh id and applies its
// signed amount to the default account, atomically.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return model.Transaction{}, err
	}
	if err := validateTransaction(txn); err != nil {
		return model.Transaction{}, err
	}

	txn.ID = uuid.NewString()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, amount, description, date, category_id, type)
			VALUES (?, ?, ?, ?, ?, ?)`,
			txn.ID, txn.Amount, txn.Description, txn.Date, txn.CategoryID, string(txn.Type),
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return adjustDefaultAccountTx(ctx, tx, txn.Signed())
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// UpdateTransaction replaces the row with the same id, adjusting the
// default account by the delta between old and new signed amounts.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(txn.ID, "id"); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := getTransactionTx(ctx, tx, txn.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE transactions
			SET amount = ?, description = ?, date = ?, category_id = ?, type = ?
			WHERE id = ?`,
			txn.Amount, txn.Description, txn.Date, txn.CategoryID, string(txn.Type), txn.ID,
		); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return adjustDefaultAccountTx(ctx, tx, txn.Signed()-existing.Signed())
	})
}

// DeleteTransaction removes a transaction and reverses its balance
// effect. Unknown ids are ignored.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := getTransactionTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return adjustDefaultAccountTx(ctx, tx, -existing.Signed())
	})
}

// AddCategory inserts a category with a fresh id.
func (s *SQLiteStorage) AddCategory(ctx context.Context, category model.Category) (model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return model.Category{}, err
	}
	if err := validateCategory(category); err != nil {
		return model.Category{}, err
	}

	category.ID = uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color, type)
		VALUES (?, ?, ?, ?, ?)`,
		category.ID, category.Name, category.Icon, category.Color, string(category.Type),
	); err != nil {
		return model.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	return category, nil
}

// SetBudget upserts by category id, preserving the id of an existing
// budget for that category.
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget model.Budget) (model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return model.Budget{}, err
	}
	if err := validateBudget(budget); err != nil {
		return model.Budget{}, err
	}

	var result model.Budget
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var existingID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM budgets WHERE category_id = ?`, budget.CategoryID,
		).Scan(&existingID)

		switch {
		case err == sql.ErrNoRows:
			budget.ID = uuid.NewString()
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO budgets (id, category_id, amount, period)
				VALUES (?, ?, ?, ?)`,
				budget.ID, budget.CategoryID, budget.Amount, string(budget.Period),
			); err != nil {
				return fmt.Errorf("failed to insert budget: %w", err)
			}
			result = budget
			return nil
		case err != nil:
			return fmt.Errorf("failed to query budget: %w", err)
		default:
			if _, err := tx.ExecContext(ctx, `
				UPDATE budgets SET amount = ?, period = ? WHERE id = ?`,
				budget.Amount, string(budget.Period), existingID,
			); err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}
			budget.ID = existingID
			result = budget
			return nil
		}
	})
	if err != nil {
		return model.Budget{}, err
	}
	return result, nil
}

// withTx runs fn inside a transaction, committing on success.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// getTransactionTx fetches one transaction inside a transaction,
// returning nil when absent.
func getTransactionTx(ctx context.Context, tx *sql.Tx, id string) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string
	var date time.Time
	err := tx.QueryRowContext(ctx, `
		SELECT id, amount, description, date, category_id, type
		FROM transactions WHERE id = ?`, id,
	).Scan(&txn.ID, &txn.Amount, &txn.Description, &date, &txn.CategoryID, &txnType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	txn.Date = date
	txn.Type = model.TransactionType(txnType)
	return &txn, nil
}

// adjustDefaultAccountTx applies a signed delta to the default (first)
// account inside the given transaction.
func adjustDefaultAccountTx(ctx context.Context, tx *sql.Tx, delta float64) error {
	var accountID string
	err := tx.QueryRowContext(ctx, `SELECT id FROM accounts ORDER BY rowid LIMIT 1`).Scan(&accountID)
	if err == sql.ErrNoRows {
		return common.ErrNoDefaultAccount
	}
	if err != nil {
		return fmt.Errorf("failed to find default account: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + ? WHERE id = ?`, delta, accountID,
	); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}
