package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/engine"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction by id and reverse its effect on the
account balance. Deleting an unknown id does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteTransaction(cmd.Context(), args[0]); err != nil {
		return err
	}

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Deleted. Balance: %s\n", cli.FormatAmount(engine.CurrentBalance(snap.Transactions)))
	return nil
}
