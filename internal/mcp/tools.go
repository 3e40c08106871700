package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List the knowledge-base categories with their article counts."),
)

// searchArticlesTool defines the search_articles MCP tool.
var searchArticlesTool = mcp.NewTool("search_articles",
	mcp.WithDescription("Find support articles by category and/or free text. Text matches titles and descriptions, case-insensitively."),
	mcp.WithString("query",
		mcp.Description("Text to look for in article titles and descriptions"),
	),
	mcp.WithString("category",
		mcp.Description("Category id; empty for all"),
		mcp.Enum("hardware", "software", "connectivity", "accounts-access", "web-apps"),
	),
)

// getArticleTool defines the get_article MCP tool.
var getArticleTool = mcp.NewTool("get_article",
	mcp.WithDescription("Get a support article as Markdown, with numbered solution steps."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Article id"),
	),
)

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the portal's virtual assistant. Returns its canned answer and the related article, if any."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("What the user would type in the chat"),
	),
)
