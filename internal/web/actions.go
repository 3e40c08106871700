package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/report"
	"github.com/nextgen-ti/kbportal/internal/session"
)

// pageData is what the page template renders.
type pageData struct {
	session.Snapshot
	ArticleHTML template.HTML
	Report      reportView
	SurveyURL   string
	Nav         []navItem
}

type reportView struct {
	Form      report.Form
	Errors    *report.ValidationError
	Types     []report.IncidentType
	Urgencies []catalog.Urgency
}

type navItem struct {
	Screen browse.Screen
	Label  string
	Active bool
}

var navScreens = []navItem{
	{Screen: browse.ScreenChat, Label: "Asistente Virtual"},
	{Screen: browse.ScreenDiagnostics, Label: "Diagnóstico"},
	{Screen: browse.ScreenSurvey, Label: "Encuesta"},
	{Screen: browse.ScreenLegal, Label: "Legal"},
	{Screen: browse.ScreenAbout, Label: "Acerca de"},
}

func (p *Portal) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	p.render(w, http.StatusOK, sess.Snapshot(), report.Form{}.WithDefaults(), nil)
}

func (p *Portal) render(w http.ResponseWriter, status int, snap session.Snapshot, form report.Form, verr *report.ValidationError) {
	data := pageData{
		Snapshot:  snap,
		SurveyURL: p.cfg.SurveyURL,
		Report: reportView{
			Form:      form,
			Errors:    verr,
			Types:     report.IncidentTypes,
			Urgencies: report.Urgencies,
		},
	}
	if snap.View.Article != nil {
		data.ArticleHTML = p.articles[snap.View.Article.ID]
	}
	for _, n := range navScreens {
		n.Active = n.Screen == snap.View.Screen
		data.Nav = append(data.Nav, n)
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		p.logger.Error("rendering page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// done finishes a form-post action: back to the page on success, a plain
// error otherwise.
func (p *Portal) done(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			p.logger.Error("action failed", "path", r.URL.Path, "err", err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Portal) handleCategoryAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	c, err := parseCategory(r.FormValue("category"))
	if err == nil {
		err = sess.SetCategory(c)
	}
	p.done(w, r, err)
}

func (p *Portal) handleSearchAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	sess.SetSearchQuery(r.FormValue("q"))
	p.done(w, r, nil)
}

func (p *Portal) handleSelectAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	p.done(w, r, sess.SelectArticle(r.Context(), r.FormValue("id")))
}

func (p *Portal) handleNavigateAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	screen, err := browse.ParseScreen(r.FormValue("screen"))
	if err == nil {
		err = sess.Navigate(screen)
	}
	p.done(w, r, err)
}

func (p *Portal) handleResetAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	sess.ResetFilters()
	p.done(w, r, nil)
}

// handleReportAction submits the incident form. An invalid form re-renders
// the report screen with the visitor's input and the field errors.
func (p *Portal) handleReportAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	form := formFromRequest(r)

	_, err := sess.SubmitReport(r.Context(), form)
	var verr *report.ValidationError
	if errors.As(err, &verr) {
		p.render(w, http.StatusUnprocessableEntity, sess.Snapshot(), form, verr)
		return
	}
	p.done(w, r, err)
}

func (p *Portal) handleChatAction(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)
	_, _, err := sess.SubmitChat(r.FormValue("message"))
	p.done(w, r, err)
}

func formFromRequest(r *http.Request) report.Form {
	f := report.Form{
		FullName:    r.FormValue("full_name"),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Subject:     r.FormValue("subject"),
		Description: r.FormValue("description"),
	}
	if t, err := report.ParseIncidentType(r.FormValue("type")); err == nil {
		f.Type = t
	} else {
		f.Type = report.IncidentType(r.FormValue("type"))
	}
	if v := strings.TrimSpace(r.FormValue("urgency")); v != "" {
		if u, err := catalog.ParseUrgency(v); err == nil {
			f.Urgency = u
		} else {
			f.Urgency = -1
		}
	}
	return f.WithDefaults()
}

func parseCategory(s string) (catalog.Category, error) {
	c, err := catalog.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return c, nil
}
