package browse

import "github.com/nextgen-ti/kbportal/internal/catalog"

// CategoryOption is one entry of the category navigation list.
type CategoryOption struct {
	ID       catalog.Category `json:"id"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
	Selected bool             `json:"selected"`
}

// ArticleDetail is the detail-screen projection of an article.
type ArticleDetail struct {
	catalog.Article
	Steps []catalog.Step `json:"steps"`
}

// View is a render-ready snapshot of a State.
type View struct {
	Screen      Screen            `json:"screen"`
	Category    catalog.Category  `json:"category,omitempty"`
	Query       string            `json:"query"`
	Categories  []CategoryOption  `json:"categories"`
	Articles    []catalog.Article `json:"articles"`
	Empty       bool              `json:"empty"`
	Article     *ArticleDetail    `json:"article,omitempty"`
	ScrollToTop bool              `json:"scroll_to_top"`
}

// Heading returns the listing title for the current filter.
func (v View) Heading() string {
	if v.Category != "" {
		return "Artículos de " + v.Category.Label()
	}
	return "Todos los Artículos"
}

// View builds a snapshot for rendering. The scroll-to-top effect raised by
// SelectArticle is reported once and then cleared.
func (s *State) View() View {
	visible := s.Visible()
	counts := s.catalog.CountByCategory()

	cats := s.catalog.Categories()
	opts := make([]CategoryOption, len(cats))
	for i, c := range cats {
		opts[i] = CategoryOption{ID: c, Label: c.Label(), Count: counts[c], Selected: c == s.category}
	}

	v := View{
		Screen:      s.screen,
		Category:    s.category,
		Query:       s.query,
		Categories:  opts,
		Articles:    visible,
		Empty:       len(visible) == 0,
		ScrollToTop: s.scrollToTop,
	}
	if a, ok := s.SelectedArticle(); ok && s.screen == ScreenArticle {
		v.Article = &ArticleDetail{Article: a, Steps: a.NumberedSteps()}
	}
	s.scrollToTop = false
	return v
}
