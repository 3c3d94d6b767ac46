package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/engine"
	"github.com/hollisb/centsible/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction.

Examples:
  # Record an expense (the default type)
  centsible add 12.50 "lunch" --category 1

  # Record income
  centsible add 3200 "September salary" --category 7 --type income

  # Backdate a transaction
  centsible add 89.99 "electricity" --category 6 --date 2026-08-14`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().StringP("category", "c", "", "category id (required)")
	cmd.Flags().StringP("type", "t", string(model.TypeExpense), "transaction type (income, expense)")
	cmd.Flags().StringP("date", "d", "", "transaction date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	var amount float64
	if _, err := fmt.Sscanf(args[0], "%f", &amount); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidAmount, args[0])
	}

	categoryID, _ := cmd.Flags().GetString("category")
	typeFlag, _ := cmd.Flags().GetString("type")
	dateFlag, _ := cmd.Flags().GetString("date")

	txnType := model.TransactionType(typeFlag)
	if !txnType.Valid() {
		return fmt.Errorf("%w: %q (want income or expense)", common.ErrInvalidType, typeFlag)
	}

	date := time.Now()
	if dateFlag != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		date = parsed
	}

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txn, err := store.AddTransaction(cmd.Context(), model.Transaction{
		Amount:      amount,
		Description: args[1],
		Date:        date,
		CategoryID:  categoryID,
		Type:        txnType,
	})
	if err != nil {
		return err
	}

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	category := model.Uncategorized()
	if cat := engine.CategoryByID(snap.Categories, txn.CategoryID); cat != nil {
		category = *cat
	}

	fmt.Printf("%s %s %s (%s)\n",
		cli.BoldStyle.Render("Recorded"),
		cli.FormatAmount(txn.Signed()),
		txn.Description,
		category.Name)
	fmt.Printf("Balance: %s\n", cli.FormatAmount(engine.CurrentBalance(snap.Transactions)))
	return nil
}
