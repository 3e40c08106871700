package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
)

func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts := s.catalog.CountByCategory()

	var b strings.Builder
	b.WriteString("# Categorías\n\n")
	for _, c := range s.catalog.Categories() {
		fmt.Fprintf(&b, "- **%s** (`%s`): %d artículos\n", c.Label(), c, counts[c])
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleSearchArticles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	category, err := catalog.ParseCategory(request.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := browse.Filter(s.catalog.Articles(), category, query)
	if len(results) == 0 {
		return mcp.NewToolResultText("No se encontraron artículos que coincidan con la búsqueda."), nil
	}

	return mcp.NewToolResultText(formatArticleList(results)), nil
}

func (s *Server) handleGetArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	a, ok := s.catalog.Article(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no article with id %q; use search_articles to find one", id)), nil
	}
	return mcp.NewToolResultText(a.Markdown()), nil
}

func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}

	m := s.selector.Select(message)

	var b strings.Builder
	b.WriteString(m.Response)
	b.WriteString("\n")
	if m.ArticleID != "" {
		if a, ok := s.catalog.Article(m.ArticleID); ok {
			fmt.Fprintf(&b, "\nArtículo relacionado: [%s] %s\n", a.ID, a.Title)
		}
	}
	fmt.Fprintf(&b, "\n_rule: %s_\n", m.Rule)
	return mcp.NewToolResultText(b.String()), nil
}

// formatArticleList renders search results as a compact Markdown list.
func formatArticleList(articles []catalog.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d articles:\n\n", len(articles))
	for _, a := range articles {
		fmt.Fprintf(&b, "### [%s] %s\n", a.ID, a.Title)
		fmt.Fprintf(&b, "%s · Urgencia: %s\n\n", a.Category.Label(), a.Urgency.Label())
		fmt.Fprintf(&b, "%s\n\n", a.Description)
	}
	return b.String()
}
