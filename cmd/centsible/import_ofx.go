package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/model"
	"github.com/hollisb/centsible/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from
your bank. Imported entries land in the Uncategorized category; assign
real categories afterwards.

Examples:
  # Import a single file
  centsible import ~/Downloads/statement_aug.qfx

  # Import everything in a directory
  centsible import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var allTransactions []model.Transaction
	seen := make(map[string]bool)

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for _, txn := range transactions {
			key := importKey(txn)
			if seen[key] {
				continue
			}
			seen[key] = true
			allTransactions = append(allTransactions, txn)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"transactions_found", len(transactions),
			"added", added,
			"duplicates", len(transactions)-added)
	}

	if len(allTransactions) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	if dryRun {
		fmt.Printf("Would import %d transactions (dry run)\n", len(allTransactions))
		return nil
	}

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(allTransactions)), "importing")
	for _, txn := range allTransactions {
		if _, err := store.AddTransaction(cmd.Context(), txn); err != nil {
			return fmt.Errorf("failed to save transaction %q: %w", txn.Description, err)
		}
		_ = bar.Add(1)
	}

	fmt.Printf("Imported %d transactions\n", len(allTransactions))
	return nil
}

// importKey identifies a statement entry across overlapping exports.
func importKey(txn model.Transaction) string {
	return fmt.Sprintf("%s:%.2f:%s:%s", txn.DayKey(), txn.Amount, txn.Type, txn.Description)
}
