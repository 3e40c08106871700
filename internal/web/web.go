// Package web serves the single-page portal: the HTML page rendered for the
// session's active screen, form-post actions, the JSON API and the chat
// websocket.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/logging"
	"github.com/nextgen-ti/kbportal/internal/report"
	"github.com/nextgen-ti/kbportal/internal/session"
)

// DefaultCookieName identifies the session cookie when none is configured.
const DefaultCookieName = "kb_session"

// Config holds presentation settings.
type Config struct {
	CookieName string
	SurveyURL  string
}

// Portal wires the catalog, sessions and assistant to HTTP.
type Portal struct {
	cfg      Config
	catalog  *catalog.Catalog
	sessions *session.Store
	selector *chat.Selector
	logger   *log.Logger

	tmpl     *template.Template
	articles map[string]template.HTML
}

// New builds a portal. Article bodies are rendered once, since the catalog is
// immutable.
func New(cfg Config, c *catalog.Catalog, sessions *session.Store, selector *chat.Selector, logger *log.Logger) (*Portal, error) {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if selector == nil {
		selector = chat.DefaultSelector()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	tmpl, err := template.New("page").Funcs(templateFuncs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	md := newMarkdown()
	rendered := make(map[string]template.HTML, c.Len())
	for _, a := range c.Articles() {
		html, err := renderArticle(md, a)
		if err != nil {
			return nil, fmt.Errorf("rendering article %s: %w", a.ID, err)
		}
		rendered[a.ID] = html
	}

	return &Portal{
		cfg:      cfg,
		catalog:  c,
		sessions: sessions,
		selector: selector,
		logger:   logger,
		tmpl:     tmpl,
		articles: rendered,
	}, nil
}

// RegisterRoutes mounts all portal routes onto the given router.
func (p *Portal) RegisterRoutes(r chi.Router) {
	r.Get("/", p.handleIndex)

	r.Route("/actions", func(r chi.Router) {
		r.Post("/category", p.handleCategoryAction)
		r.Post("/search", p.handleSearchAction)
		r.Post("/select", p.handleSelectAction)
		r.Post("/navigate", p.handleNavigateAction)
		r.Post("/reset", p.handleResetAction)
		r.Post("/report", p.handleReportAction)
		r.Post("/chat", p.handleChatAction)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", p.handleSession)
		r.Post("/session/category", p.handleAPICategory)
		r.Post("/session/search", p.handleAPISearch)
		r.Post("/session/select", p.handleAPISelect)
		r.Post("/session/navigate", p.handleAPINavigate)
		r.Post("/session/reset", p.handleAPIReset)
		r.Post("/session/report", p.handleAPIReport)
		r.Post("/session/chat", p.handleAPIChat)

		r.Get("/catalog/categories", p.handleCategories)
		r.Get("/catalog/articles", p.handleArticles)
		r.Get("/catalog/articles/{id}", p.handleArticle)
		r.Post("/chat/preview", p.handleChatPreview)
	})

	r.Get("/ws/chat", p.handleWebSocket)
}

// session resolves the visitor's session from the cookie, starting a new one
// (and setting the cookie) when it is missing or expired.
func (p *Portal) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(p.cfg.CookieName); err == nil {
		id = c.Value
	}
	sess, created := p.sessions.GetOrCreate(r.Context(), id)
	if created {
		http.SetCookie(w, p.cookie(sess.ID()))
	}
	return sess
}

func (p *Portal) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *report.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, browse.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, browse.ErrUnknownCategory),
		errors.Is(err, browse.ErrUnknownScreen),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, browse.ErrNoArticleSelected),
		errors.Is(err, session.ErrChatInactive),
		errors.Is(err, chat.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, session.ErrRateLimited),
		errors.Is(err, chat.ErrBusy):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")
