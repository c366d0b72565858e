package models

import "time"

// Post represents a published page of the site
type Post struct {
	ID          int64
	Slug        string
	Title       string
	PublishedAt int64 // Unix timestamp
	Categories  []string
}

// NewPost creates a new Post published now
func NewPost(slug, title string, categories ...string) *Post {
	return &Post{
		Slug:        slug,
		Title:       title,
		PublishedAt: time.Now().Unix(),
		Categories:  categories,
	}
}

// Date returns the publish date formatted as YYYY-MM-DD
func (p Post) Date() string {
	return time.Unix(p.PublishedAt, 0).Format("2006-01-02")
}
