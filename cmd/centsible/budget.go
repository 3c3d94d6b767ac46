package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/engine"
	"github.com/hollisb/centsible/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets",
	}

	set := &cobra.Command{
		Use:   "set <category-id> <amount>",
		Short: "Set a budget for a category",
		Long: `Set a spending ceiling for one category. Setting a budget for a
category that already has one overwrites its amount and period in
place; there is never more than one budget per category.`,
		Args: cobra.ExactArgs(2),
		RunE: runBudgetSet,
	}
	set.Flags().StringP("period", "p", string(model.PeriodMonthly), "budget period (daily, weekly, monthly)")

	progress := &cobra.Command{
		Use:   "progress",
		Short: "Show spend against each budget",
		RunE:  runBudgetProgress,
	}

	cmd.AddCommand(set)
	cmd.AddCommand(progress)
	return cmd
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	var amount float64
	if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidAmount, args[1])
	}

	periodFlag, _ := cmd.Flags().GetString("period")
	period := model.Period(periodFlag)

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	budget, err := store.SetBudget(cmd.Context(), model.Budget{
		CategoryID: args[0],
		Amount:     amount,
		Period:     period,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Budget set: %s %.2f per %s period\n", budget.CategoryID, budget.Amount, budget.Period)
	return nil
}

func runBudgetProgress(cmd *cobra.Command, _ []string) error {
	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	progress := engine.BudgetProgress(snap.Budgets, snap.Transactions, snap.Categories, timeNow())
	if len(progress) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No budgets set."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Budget progress"))
	for _, p := range progress {
		status := fmt.Sprintf("%.2f of %.2f (%.0f%%)", p.Spent, p.Budget.Amount, p.Percentage)
		if p.Remaining < 0 {
			status += cli.ErrorStyle.Render(fmt.Sprintf("  over by %.2f", -p.Remaining))
		}
		fmt.Printf("%-20s %s  %s\n",
			p.Category.Name,
			cli.ProgressBar(p.Percentage, 20),
			status)
	}
	return nil
}
