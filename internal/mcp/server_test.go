package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nextgen-ti/kbportal/internal/catalog"
)

func newTestServer() *Server {
	return NewServer(catalog.Default(), nil)
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_categories", listCategoriesTool, "list_categories"},
		{"search_articles", searchArticlesTool, "search_articles"},
		{"get_article", getArticleTool, "get_article"},
		{"ask_assistant", askAssistantTool, "ask_assistant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv.mcp == nil {
		t.Fatal("expected MCP server to be initialised")
	}
	if srv.selector == nil {
		t.Fatal("expected default selector")
	}
}

func TestHandleListCategories(t *testing.T) {
	srv := newTestServer()

	result, err := srv.handleListCategories(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := extractText(result)
	for _, want := range []string{"Hardware", "Cuentas y Accesos", "`web-apps`"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in %q", want, text)
		}
	}
}

func TestHandleSearchArticles(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	t.Run("by query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "vpn"}

		result, err := srv.handleSearchArticles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.Contains(text, "Found 1 articles") || !strings.Contains(text, "[3]") {
			t.Errorf("unexpected result %q", text)
		}
	})

	t.Run("category and query with no match", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "contraseña", "category": "hardware"}

		result, err := srv.handleSearchArticles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("empty results should not be an error")
		}
		if !strings.Contains(extractText(result), "No se encontraron") {
			t.Errorf("expected empty-state text, got %q", extractText(result))
		}
	})

	t.Run("no arguments lists all", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchArticles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(extractText(result), "Found 5 articles") {
			t.Errorf("expected all articles, got %q", extractText(result))
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"category": "impresoras"}

		result, err := srv.handleSearchArticles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown category")
		}
	})
}

func TestHandleGetArticle(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	t.Run("existing article", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "5"}

		result, err := srv.handleGetArticle(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.Contains(text, "## Solución Paso a Paso") || !strings.Contains(text, "\n1. ") {
			t.Errorf("expected numbered steps in %q", text)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetArticle(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing id")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "42"}

		result, err := srv.handleGetArticle(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown id")
		}
	})
}

func TestHandleAskAssistant(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	t.Run("rule with article", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"message": "No puedo imprimir"}

		result, err := srv.handleAskAssistant(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := extractText(result)
		if !strings.Contains(text, "Artículo relacionado: [4]") || !strings.Contains(text, "_rule: printer_") {
			t.Errorf("unexpected answer %q", text)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"message": "xyz"}

		result, err := srv.handleAskAssistant(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(extractText(result), "_rule: fallback_") {
			t.Errorf("expected fallback, got %q", extractText(result))
		}
	})

	t.Run("blank message", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"message": "  "}

		result, err := srv.handleAskAssistant(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for blank message")
		}
	})
}
