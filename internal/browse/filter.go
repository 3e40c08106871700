package browse

import (
	"strings"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

// Filter returns the articles matching both predicates, in input order.
// An empty category matches everything, as does an empty query. The query is
// a plain case-insensitive substring test against title or description.
func Filter(articles []catalog.Article, category catalog.Category, query string) []catalog.Article {
	q := strings.ToLower(query)
	out := make([]catalog.Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
