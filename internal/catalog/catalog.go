package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistent is returned by New when articles and categories disagree.
var ErrInconsistent = errors.New("inconsistent catalog")

// Catalog is an immutable, ordered set of articles plus the category list.
type Catalog struct {
	articles   []Article
	categories []Category
	byID       map[string]int
}

// New builds a catalog, checking that ids are unique and that every article
// references a listed category. Categories without articles are allowed.
func New(articles []Article, categories []Category) (*Catalog, error) {
	known := make(map[Category]bool, len(categories))
	for _, c := range categories {
		if c == "" {
			return nil, fmt.Errorf("%w: empty category", ErrInconsistent)
		}
		if known[c] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInconsistent, c)
		}
		known[c] = true
	}

	c := &Catalog{
		articles:   make([]Article, 0, len(articles)),
		categories: append([]Category(nil), categories...),
		byID:       make(map[string]int, len(articles)),
	}
	for _, a := range articles {
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("%w: article %q has no id", ErrInconsistent, a.Title)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate article id %q", ErrInconsistent, a.ID)
		}
		if !known[a.Category] {
			return nil, fmt.Errorf("%w: article %q references unknown category %q", ErrInconsistent, a.ID, a.Category)
		}
		if !a.Urgency.Valid() {
			return nil, fmt.Errorf("%w: article %q has invalid urgency", ErrInconsistent, a.ID)
		}
		c.byID[a.ID] = len(c.articles)
		c.articles = append(c.articles, a.clone())
	}
	return c, nil
}

// Articles returns every article in catalog order.
func (c *Catalog) Articles() []Article {
	out := make([]Article, len(c.articles))
	for i, a := range c.articles {
		out[i] = a.clone()
	}
	return out
}

// Categories returns the category list in display order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// HasCategory reports whether cat is part of the enumeration.
func (c *Catalog) HasCategory(cat Category) bool {
	for _, known := range c.categories {
		if known == cat {
			return true
		}
	}
	return false
}

// Article looks up an article by id.
func (c *Catalog) Article(id string) (Article, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Article{}, false
	}
	return c.articles[i].clone(), true
}

// Len returns the number of articles.
func (c *Catalog) Len() int { return len(c.articles) }

// CountByCategory returns how many articles each category holds.
func (c *Catalog) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(c.categories))
	for _, cat := range c.categories {
		counts[cat] = 0
	}
	for _, a := range c.articles {
		counts[a.Category]++
	}
	return counts
}
