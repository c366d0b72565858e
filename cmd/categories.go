package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/catsort/internal/db"
	"github.com/chris/catsort/internal/filters"
	"github.com/chris/catsort/internal/site"
	"github.com/chris/catsort/internal/summary"
)

var categoriesLimit int

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show categories ranked by post count",
	Long:  "Display every category with its post count, largest first. Categories with equal counts are listed by name.",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().IntVarP(&categoriesLimit, "limit", "n", 0, "Show at most N categories (default: all)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	if categoriesLimit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	database, err := db.New(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	posts, err := database.ListPosts()
	if err != nil {
		return fmt.Errorf("failed to query posts: %w", err)
	}

	sorted := filters.SortByLenDescending(site.GroupByCategory(posts))
	logger.Debug("ranked categories", "posts", len(posts), "categories", len(sorted))

	// Check if output is a TTY to determine if we should use colors
	opts := summary.TableOptions{
		Title:   cfg.Site.Title,
		Limit:   categoriesLimit,
		NoColor: !isTerminal(cmd.OutOrStdout()),
	}
	fmt.Fprint(cmd.OutOrStdout(), summary.FormatCategoryTable(sorted, opts))

	return nil
}
