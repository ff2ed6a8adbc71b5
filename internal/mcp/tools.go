package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchErrorsTool defines the search_errors MCP tool.
var searchErrorsTool = mcp.NewTool("search_errors",
	mcp.WithDescription("Search the error catalog by code, title, description, or category. Matching is case-insensitive substring."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query (error code fragment or keywords)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getErrorTool defines the get_error MCP tool.
var getErrorTool = mcp.NewTool("get_error",
	mcp.WithDescription("Get the full record for a specific error code, including all solutions with their steps."),
	mcp.WithString("code",
		mcp.Required(),
		mcp.Description("Exact error code, e.g. E-NET-001"),
	),
)

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List all catalog categories with their subcategories and error counts."),
)

// catalogStatsTool defines the catalog_stats MCP tool.
var catalogStatsTool = mcp.NewTool("catalog_stats",
	mcp.WithDescription("Get catalog totals: number of errors and number of documented solutions."),
)
