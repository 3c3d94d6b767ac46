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

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Edit an existing transaction in place. Only the flags you pass
change; everything else keeps its current value. The transaction id
never changes, and the account balance is adjusted by the difference.

Examples:
  centsible edit 3f2a... --amount 14.20
  centsible edit 3f2a... --category 2 --description "train ticket"`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().Float64("amount", 0, "new amount")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().StringP("category", "c", "", "new category id")
	cmd.Flags().StringP("type", "t", "", "new transaction type (income, expense)")
	cmd.Flags().StringP("date", "d", "", "new date as YYYY-MM-DD")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	var txn *model.Transaction
	for i := range snap.Transactions {
		if snap.Transactions[i].ID == args[0] {
			txn = &snap.Transactions[i]
			break
		}
	}
	if txn == nil {
		return fmt.Errorf("no transaction with id %s", args[0])
	}

	if cmd.Flags().Changed("amount") {
		txn.Amount, _ = cmd.Flags().GetFloat64("amount")
	}
	if cmd.Flags().Changed("description") {
		txn.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("category") {
		txn.CategoryID, _ = cmd.Flags().GetString("category")
	}
	if cmd.Flags().Changed("type") {
		typeFlag, _ := cmd.Flags().GetString("type")
		txnType := model.TransactionType(typeFlag)
		if !txnType.Valid() {
			return fmt.Errorf("%w: %q (want income or expense)", common.ErrInvalidType, typeFlag)
		}
		txn.Type = txnType
	}
	if cmd.Flags().Changed("date") {
		dateFlag, _ := cmd.Flags().GetString("date")
		parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		txn.Date = parsed
	}

	if err := store.UpdateTransaction(cmd.Context(), *txn); err != nil {
		return err
	}

	snap, err = store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s %s %s\n",
		cli.BoldStyle.Render("Updated"),
		cli.FormatAmount(txn.Signed()),
		txn.Description)
	fmt.Printf("Balance: %s\n", cli.FormatAmount(engine.CurrentBalance(snap.Transactions)))
	return nil
}
