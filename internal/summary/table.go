package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris/catsort/internal/filters"
	"github.com/chris/catsort/pkg/models"
)

// Styles for the category table
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // bright-magenta
	categoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // bright-blue
	countStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // bright-green
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // bright-black
)

// TableOptions contains options for formatting the category table
type TableOptions struct {
	Title   string
	Limit   int  // Show at most this many categories, 0 for all
	NoColor bool // Disable color output
}

// CategoryPosts is one row source: a category and the posts filed under it
type CategoryPosts = filters.Pair[string, []models.Post]

func renderStyle(style lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

// FormatCategoryTable formats categories, already sorted largest first, as a table
func FormatCategoryTable(sorted []CategoryPosts, opts TableOptions) string {
	var sb strings.Builder

	sb.WriteString(formatTableHeader(opts))
	sb.WriteString("\n\n")

	if len(sorted) == 0 {
		sb.WriteString("No categories found.\n")
		return sb.String()
	}

	shown := sorted
	if opts.Limit > 0 && opts.Limit < len(sorted) {
		shown = sorted[:opts.Limit]
	}

	widths := calculateColumnWidths(shown)

	sb.WriteString(renderStyle(headerStyle, formatColumnHeaders(widths), opts.NoColor))
	sb.WriteString("\n")

	for _, row := range shown {
		sb.WriteString(formatTableRow(row, widths, opts.NoColor))
		sb.WriteString("\n")
	}

	if hidden := len(sorted) - len(shown); hidden > 0 {
		sb.WriteString(fmt.Sprintf("... and %d more\n", hidden))
	}

	sb.WriteString("\n")
	sb.WriteString(formatSummaryStats(sorted))
	sb.WriteString("\n")

	return sb.String()
}

func formatTableHeader(opts TableOptions) string {
	title := "Top Categories"
	if opts.Title != "" {
		title = fmt.Sprintf("Top Categories - %s", opts.Title)
	}
	separator := strings.Repeat("=", len(title))
	return renderStyle(headerStyle, title, opts.NoColor) + "\n" + renderStyle(separatorStyle, separator, opts.NoColor)
}

type columnWidths struct {
	category int
	posts    int
}

func formatColumnHeaders(widths columnWidths) string {
	return fmt.Sprintf("%-*s  %*s  %s",
		widths.category, "Category",
		widths.posts, "Posts",
		"Latest")
}

func formatTableRow(row CategoryPosts, widths columnWidths, noColor bool) string {
	// Pad before styling so escape codes don't break alignment
	name := fmt.Sprintf("%-*s", widths.category, row.Key)
	count := fmt.Sprintf("%*s", widths.posts, strconv.Itoa(len(row.Value)))

	return fmt.Sprintf("%s  %s  %s",
		renderStyle(categoryStyle, name, noColor),
		renderStyle(countStyle, count, noColor),
		latestDate(row.Value))
}

func calculateColumnWidths(rows []CategoryPosts) columnWidths {
	widths := columnWidths{
		category: len("Category"),
		posts:    len("Posts"),
	}

	for _, row := range rows {
		if len(row.Key) > widths.category {
			widths.category = len(row.Key)
		}
		if n := len(strconv.Itoa(len(row.Value))); n > widths.posts {
			widths.posts = n
		}
	}

	return widths
}

// latestDate returns the newest publish date among posts, or "-" for none
func latestDate(posts []models.Post) string {
	if len(posts) == 0 {
		return "-"
	}
	latest := posts[0]
	for _, p := range posts[1:] {
		if p.PublishedAt > latest.PublishedAt {
			latest = p
		}
	}
	return latest.Date()
}

// formatSummaryStats counts distinct posts, since one post can sit in several categories
func formatSummaryStats(rows []CategoryPosts) string {
	unique := make(map[string]bool)
	for _, row := range rows {
		for _, p := range row.Value {
			unique[p.Slug] = true
		}
	}

	postPlural := "s"
	if len(unique) == 1 {
		postPlural = ""
	}
	categoryPlural := "ies"
	if len(rows) == 1 {
		categoryPlural = "y"
	}

	return fmt.Sprintf("Total: %d post%s across %d categor%s",
		len(unique), postPlural, len(rows), categoryPlural)
}
