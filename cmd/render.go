package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	articleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)

var urgencyColors = map[catalog.Urgency]lipgloss.Color{
	catalog.UrgencyLow:      lipgloss.Color("34"),
	catalog.UrgencyMedium:   lipgloss.Color("178"),
	catalog.UrgencyHigh:     lipgloss.Color("208"),
	catalog.UrgencyCritical: lipgloss.Color("196"),
}

func urgencyBadge(u catalog.Urgency) string {
	return lipgloss.NewStyle().Bold(true).Foreground(urgencyColors[u]).Render(u.Label())
}

// renderArticleList prints one summary line per article.
func renderArticleList(articles []catalog.Article) string {
	if len(articles) == 0 {
		return mutedStyle.Render("No se encontraron artículos.") + "\n"
	}

	var b strings.Builder
	for _, a := range articles {
		fmt.Fprintf(&b, "%s %s  %s\n", mutedStyle.Render("["+a.ID+"]"), titleStyle.Render(a.Title), urgencyBadge(a.Urgency))
		fmt.Fprintf(&b, "    %s · %s\n", a.Category.Label(), a.Description)
	}
	return b.String()
}

// renderArticle prints the full article inside a bordered box.
func renderArticle(a catalog.Article) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(a.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · Urgencia: %s\n", a.Category.Label(), urgencyBadge(a.Urgency))
	b.WriteString(a.Description)
	b.WriteString("\n")

	if a.TimeEstimate != "" {
		b.WriteString(sectionStyle.Render("Tiempo Estimado"))
		fmt.Fprintf(&b, "\n%s\n", a.TimeEstimate)
	}
	if len(a.Prerequisites) > 0 {
		b.WriteString(sectionStyle.Render("Prerrequisitos"))
		b.WriteString("\n")
		for _, p := range a.Prerequisites {
			fmt.Fprintf(&b, "• %s\n", p)
		}
	}

	b.WriteString(sectionStyle.Render("Solución Paso a Paso"))
	b.WriteString("\n")
	for _, s := range a.NumberedSteps() {
		fmt.Fprintf(&b, "%d. %s\n", s.Number, s.Text)
	}

	if len(a.Troubleshooting) > 0 {
		b.WriteString(sectionStyle.Render("Solución de Problemas"))
		b.WriteString("\n")
		for _, t := range a.Troubleshooting {
			fmt.Fprintf(&b, "• %s\n", t)
		}
	}

	b.WriteString(sectionStyle.Render("Contacto de Escalamiento"))
	fmt.Fprintf(&b, "\n%s", a.ContactEscalation)

	return articleBoxStyle.Render(b.String()) + "\n"
}

// renderReply prints an assistant message and, when it points at an
// article, a hint to open it.
func renderReply(m chat.Message, c *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", botStyle.Bold(true).Render("Asistente:"), botStyle.Render(m.Text))
	if m.ArticleID != "" {
		if a, ok := c.Article(m.ArticleID); ok {
			hint := fmt.Sprintf("Artículo relacionado: [%s] %s (kbportal articles show %s)", a.ID, a.Title, a.ID)
			b.WriteString(mutedStyle.Render(hint))
			b.WriteString("\n")
		}
	}
	return b.String()
}
