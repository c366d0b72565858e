package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/catsort/internal/db"
	"github.com/chris/catsort/pkg/models"
)

var (
	addSlug       string
	addTitle      string
	addCategories []string
	addDate       string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a post to the site database",
	Long:  "Add a post with its categories to the site database. Repeat --category or separate names with commas.",
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addSlug, "slug", "", "Post slug, unique per site (required)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Post title (required)")
	addCmd.Flags().StringSliceVar(&addCategories, "category", nil, "Category name, may be repeated")
	addCmd.Flags().StringVar(&addDate, "date", "", "Publish date as YYYY-MM-DD (default: now)")

	addCmd.MarkFlagRequired("slug")
	addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(addSlug) == "" {
		return fmt.Errorf("--slug is required")
	}
	if strings.TrimSpace(addTitle) == "" {
		return fmt.Errorf("--title is required")
	}

	post := models.NewPost(addSlug, addTitle, addCategories...)

	// Override publish time if provided
	if addDate != "" {
		published, err := time.ParseInLocation("2006-01-02", addDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: must be YYYY-MM-DD format", addDate)
		}
		post.PublishedAt = published.Unix()
	}

	database, err := db.New(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	id, err := database.InsertPost(post)
	if err != nil {
		return fmt.Errorf("failed to add post: %w", err)
	}

	logger.Debug("added post", "id", id, "slug", post.Slug, "categories", post.Categories)
	fmt.Fprintf(cmd.OutOrStdout(), "Added post %s with ID: %d\n", strings.TrimSpace(post.Slug), id)
	return nil
}
