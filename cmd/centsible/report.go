package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/engine"
	"github.com/hollisb/centsible/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a financial summary for a period",
		Long: `Show a period summary: income, expenses, all-time balance,
the category breakdown, the spending trend against the previous
period, the savings rate, and a 30-day expense forecast.

Examples:
  centsible report
  centsible report --period weekly
  centsible report --top 3`,
		RunE: runReport,
	}

	cmd.Flags().StringP("period", "p", string(model.PeriodMonthly), "report period (daily, weekly, monthly)")
	cmd.Flags().Int("top", 5, "number of top spending categories to show")
	cmd.Flags().String("trend-category", "", "also show a spending time series for this category id")
	cmd.Flags().String("granularity", string(engine.GranularityMonthly), "time series granularity (weekly, monthly, 3months, 6months, yearly)")
	cmd.Flags().String("compare", "", "also show income vs expenses over a timeframe (week, month, year)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	top, _ := cmd.Flags().GetInt("top")
	trendCategory, _ := cmd.Flags().GetString("trend-category")
	granularityFlag, _ := cmd.Flags().GetString("granularity")
	compare, _ := cmd.Flags().GetString("compare")

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

	now := timeNow()
	income := engine.Income(snap.Transactions, period, now)
	expenses := engine.Expenses(snap.Transactions, period, now)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Summary (%s)", period)))
	fmt.Printf("Income:   %s\n", cli.FormatAmount(income))
	fmt.Printf("Expenses: %s\n", cli.FormatAmount(-expenses))
	fmt.Printf("Balance:  %s %s\n",
		cli.FormatAmount(engine.CurrentBalance(snap.Transactions)),
		cli.SubtleStyle.Render("(all time)"))

	trend := engine.SpendingTrend(snap.Transactions, period, now)
	trendStyle := cli.SuccessStyle
	if trend > 0 {
		trendStyle = cli.ErrorStyle
	}
	fmt.Printf("Trend:    %s vs previous %s\n", trendStyle.Render(fmt.Sprintf("%+.1f%%", trend)), period)
	fmt.Printf("Savings:  %.1f%% of income\n", engine.SavingsRate(snap.Transactions, period, now))
	fmt.Printf("Forecast: %.2f over the next 30 days\n",
		engine.ForecastExpenses(snap.Transactions, snap.Budgets, 30, now))

	spending := engine.TopSpendingCategories(snap.Transactions, snap.Categories, period, now, top)
	if len(spending) > 0 {
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("Top spending categories"))
		for _, entry := range spending {
			fmt.Printf("%-20s %10.2f  %5.1f%%\n", entry.Category.Name, entry.Amount, entry.Percentage)
		}
	}

	if trendCategory != "" {
		series := engine.CategorySpendingTrend(snap.Transactions, trendCategory, engine.Granularity(granularityFlag), now)
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("Category spending over time"))
		for i, label := range series.Labels {
			fmt.Printf("%-8s %10.2f\n", label, series.Data[i])
		}
	}

	if compare != "" {
		points := engine.IncomeExpenseComparison(snap.Transactions, engine.Timeframe(compare), now)
		if len(points) == 0 {
			return fmt.Errorf("invalid timeframe %q (want week, month or year)", compare)
		}
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("Income vs expenses"))
		for _, point := range points {
			fmt.Printf("%-8s %10.2f %10.2f  net %s\n",
				point.Label, point.Income, point.Expense, cli.FormatAmount(point.Net))
		}
	}

	return nil
}
