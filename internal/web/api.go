package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/report"
)

type categoryRequest struct {
	Category string `json:"category"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type navigateRequest struct {
	Screen string `json:"screen"`
}

type chatRequestBody struct {
	Message string `json:"message"`
}

type chatAPIResponse struct {
	Accepted bool          `json:"accepted"`
	Message  *chat.Message `json:"message,omitempty"`
}

type categoryResponse struct {
	ID    catalog.Category `json:"id"`
	Label string           `json:"label"`
	Count int              `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (p *Portal) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.session(w, r).Snapshot())
}

func (p *Portal) handleAPICategory(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := parseCategory(req.Category)
	if err == nil {
		err = sess.SetCategory(c)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (p *Portal) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	sess.SetSearchQuery(req.Query)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (p *Portal) handleAPISelect(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var req selectRequest
	if !decode(w, r, &req) {
		return
	}
	if err := sess.SelectArticle(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (p *Portal) handleAPINavigate(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var req navigateRequest
	if !decode(w, r, &req) {
		return
	}
	screen, err := browse.ParseScreen(req.Screen)
	if err == nil {
		err = sess.Navigate(screen)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (p *Portal) handleAPIReset(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	sess.ResetFilters()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (p *Portal) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var form report.Form
	if !decode(w, r, &form) {
		return
	}

	ack, err := sess.SubmitReport(r.Context(), form)
	var verr *report.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

func (p *Portal) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	var req chatRequestBody
	if !decode(w, r, &req) {
		return
	}

	msg, ok, err := sess.SubmitChat(req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := chatAPIResponse{Accepted: ok}
	if ok {
		resp.Message = &msg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (p *Portal) handleCategories(w http.ResponseWriter, r *http.Request) {
	counts := p.catalog.CountByCategory()
	cats := p.catalog.Categories()
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = categoryResponse{ID: c, Label: c.Label(), Count: counts[c]}
	}
	writeJSON(w, http.StatusOK, out)
}

func (p *Portal) handleArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := parseCategory(q.Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	if c != "" && !p.catalog.HasCategory(c) {
		writeError(w, fmt.Errorf("%w: %q", browse.ErrUnknownCategory, c))
		return
	}

	articles := browse.Filter(p.catalog.Articles(), c, q.Get("q"))
	if articles == nil {
		articles = []catalog.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (p *Portal) handleArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := p.catalog.Article(id)
	if !ok {
		writeError(w, fmt.Errorf("%w: %q", browse.ErrArticleNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, browse.ArticleDetail{Article: a, Steps: a.NumberedSteps()})
}

// handleChatPreview answers an utterance without a session or delay.
func (p *Portal) handleChatPreview(w http.ResponseWriter, r *http.Request) {
	var req chatRequestBody
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, p.selector.Select(req.Message))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
