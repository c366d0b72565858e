package render

import (
	"fmt"

	"github.com/chris/catsort/internal/filters"
)

// LimitName is the template name of the top-N helper
const LimitName = "limit"

// RegisterBuiltins adds the helpers that ship with the renderer
func RegisterBuiltins(r *Registry) error {
	return r.Register(LimitName, limit)
}

// limit keeps the first n entries, so a template can show the top N
// categories: {{range limit 5 (sort_hash_by_value .Site.Categories)}}
func limit(n int, entries []filters.Entry) ([]filters.Entry, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative count %d", LimitName, n)
	}
	if n >= len(entries) {
		return entries, nil
	}
	return entries[:n], nil
}
