package site

import (
	"github.com/chris/catsort/pkg/models"
)

// Uncategorized collects posts that carry no category
const Uncategorized = "Uncategorized"

// Site is the data root handed to templates as .Site
type Site struct {
	Title      string
	Posts      []models.Post
	Categories map[string]any
}

// GroupByCategory groups posts by each of their categories.
// A post with several categories appears under each of them; posts keep
// their input order within a category.
func GroupByCategory(posts []models.Post) map[string][]models.Post {
	grouped := make(map[string][]models.Post)

	for _, post := range posts {
		if len(post.Categories) == 0 {
			grouped[Uncategorized] = append(grouped[Uncategorized], post)
			continue
		}

		// A category listed twice on one post still counts the post once
		seen := make(map[string]bool, len(post.Categories))
		for _, category := range post.Categories {
			if seen[category] {
				continue
			}
			seen[category] = true
			grouped[category] = append(grouped[category], post)
		}
	}

	return grouped
}

// FromPosts builds a site whose categories are grouped from posts
func FromPosts(title string, posts []models.Post) *Site {
	grouped := GroupByCategory(posts)

	categories := make(map[string]any, len(grouped))
	for name, categoryPosts := range grouped {
		categories[name] = categoryPosts
	}

	return &Site{
		Title:      title,
		Posts:      posts,
		Categories: categories,
	}
}
