package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/engine"
	"github.com/hollisb/centsible/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, newest first, grouped by calendar day.

Examples:
  # The 10 most recent transactions
  centsible list

  # Everything from this month
  centsible list --period monthly

  # A specific page of history
  centsible list --page 2 --limit 20`,
		RunE: runList,
	}

	cmd.Flags().StringP("period", "p", "", "scope to a period (daily, weekly, monthly)")
	cmd.Flags().Int("page", 0, "page of history to show (1-based; 0 shows recent)")
	cmd.Flags().Int("limit", 10, "maximum transactions to show")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	period, err := parsePeriod(periodFlag)
	if err != nil {
		return err
	}

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	txns := snap.Transactions
	if period != model.PeriodAll {
		txns = engine.FilterByPeriod(txns, period, timeNow())
	}

	var toShow []model.Transaction
	if page > 0 {
		toShow = engine.TransactionsByPage(txns, page, limit)
	} else {
		toShow = engine.RecentTransactions(txns, limit)
	}

	if len(toShow) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions."))
		return nil
	}

	printGroupedByDay(toShow, snap.Categories)
	return nil
}

// printGroupedByDay renders transactions under their calendar-day
// headers, newest day first.
func printGroupedByDay(txns []model.Transaction, categories []model.Category) {
	groups := engine.TransactionsByDate(txns)

	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	for _, day := range days {
		fmt.Println(cli.TitleStyle.Render(day))
		for _, txn := range groups[day] {
			category := model.Uncategorized()
			if cat := engine.CategoryByID(categories, txn.CategoryID); cat != nil {
				category = *cat
			}
			fmt.Printf("  %s  %-30s %s  %s\n",
				cli.FormatAmount(txn.Signed()),
				txn.Description,
				cli.SubtleStyle.Render(category.Name),
				cli.SubtleStyle.Render(txn.ID))
		}
	}
}
