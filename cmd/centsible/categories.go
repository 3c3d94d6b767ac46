package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/centsible/internal/cli"
	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/engine"
	"github.com/hollisb/centsible/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE:  runCategoriesList,
	}
	list.Flags().Bool("unused", false, "only show categories with no transactions")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesAdd,
	}
	add.Flags().StringP("type", "t", string(model.TypeExpense), "category type (income, expense)")
	add.Flags().String("icon", "tag", "icon name")
	add.Flags().String("color", "#999999", "display color")

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	unusedOnly, _ := cmd.Flags().GetBool("unused")

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	categories := snap.Categories
	if unusedOnly {
		categories = engine.UnusedCategories(snap.Transactions, snap.Categories)
	}

	if len(categories) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No categories."))
		return nil
	}

	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-20s %-8s", "ID", "NAME", "TYPE")))
	for _, cat := range categories {
		fmt.Printf("%-4s %-20s %-8s\n", cat.ID, cat.Name, cat.Type)
	}
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	icon, _ := cmd.Flags().GetString("icon")
	color, _ := cmd.Flags().GetString("color")

	catType := model.TransactionType(typeFlag)
	if !catType.Valid() {
		return fmt.Errorf("%w: %q (want income or expense)", common.ErrInvalidType, typeFlag)
	}

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	category, err := store.AddCategory(cmd.Context(), model.Category{
		Name:  args[0],
		Icon:  icon,
		Color: color,
		Type:  catType,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added category %s (%s)\n", cli.BoldStyle.Render(category.Name), category.ID)
	return nil
}
