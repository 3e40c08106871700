package browse

import (
	"errors"
	"fmt"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

// Screen is one of the mutually exclusive views of the portal.
type Screen string

const (
	ScreenListing     Screen = "listing"
	ScreenArticle     Screen = "article"
	ScreenReport      Screen = "report"
	ScreenAbout       Screen = "about"
	ScreenDiagnostics Screen = "diagnostics"
	ScreenLegal       Screen = "legal"
	ScreenSurvey      Screen = "survey"
	ScreenChat        Screen = "chat"
)

// Screens lists every screen in navigation order.
var Screens = []Screen{
	ScreenListing, ScreenArticle, ScreenReport, ScreenAbout,
	ScreenDiagnostics, ScreenLegal, ScreenSurvey, ScreenChat,
}

var (
	ErrUnknownScreen     = errors.New("unknown screen")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrArticleNotFound   = errors.New("article not found")
	ErrNoArticleSelected = errors.New("no article selected")
)

// ParseScreen validates a screen name.
func ParseScreen(s string) (Screen, error) {
	for _, sc := range Screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, s)
}

// State is the UI selection state of one session. It is not safe for
// concurrent use; the owning session serialises access.
type State struct {
	catalog *catalog.Catalog

	category    catalog.Category
	query       string
	screen      Screen
	article     *catalog.Article
	scrollToTop bool
}

// NewState returns a state on the listing screen with no filters.
func NewState(c *catalog.Catalog) *State {
	return &State{catalog: c, screen: ScreenListing}
}

// SetCategory replaces the category filter ("" means all) and shows the
// listing. The search text is kept.
func (s *State) SetCategory(c catalog.Category) error {
	if c != "" && !s.catalog.HasCategory(c) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	s.category = c
	s.show(ScreenListing)
	return nil
}

// SetSearchQuery replaces the free-text filter.
func (s *State) SetSearchQuery(q string) {
	s.query = q
}

// SelectArticle opens the detail view for the article with the given id.
func (s *State) SelectArticle(id string) error {
	a, ok := s.catalog.Article(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrArticleNotFound, id)
	}
	s.article = &a
	s.screen = ScreenArticle
	s.scrollToTop = true
	return nil
}

// Navigate switches to the given screen without touching the filters.
func (s *State) Navigate(screen Screen) error {
	if _, err := ParseScreen(string(screen)); err != nil {
		return err
	}
	if screen == ScreenArticle && s.article == nil {
		return ErrNoArticleSelected
	}
	s.show(screen)
	return nil
}

// ResetFilters clears category and query and returns to the listing.
func (s *State) ResetFilters() {
	s.category = ""
	s.query = ""
	s.show(ScreenListing)
}

func (s *State) show(screen Screen) {
	if screen != ScreenArticle {
		s.article = nil
	}
	s.screen = screen
}

// Screen returns the active screen.
func (s *State) Screen() Screen { return s.screen }

// Category returns the active category filter.
func (s *State) Category() catalog.Category { return s.category }

// Query returns the active search text.
func (s *State) Query() string { return s.query }

// SelectedArticle returns the article shown on the detail screen.
func (s *State) SelectedArticle() (catalog.Article, bool) {
	if s.article == nil {
		return catalog.Article{}, false
	}
	return *s.article, true
}

// Visible recomputes the filtered article list.
func (s *State) Visible() []catalog.Article {
	return Filter(s.catalog.Articles(), s.category, s.query)
}
