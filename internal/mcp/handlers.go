package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/errdex/errdex/internal/catalog"
)

// handleSearchErrors searches the catalog and formats matches as text.
func (s *Server) handleSearchErrors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results := s.catalog.Search(query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No errors match %q.", query)), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetError returns the full record for one error code.
func (s *Server) handleGetError(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: code"), nil
	}

	rec, ok := s.catalog.Error(code)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown error code %q", code)), nil
	}

	return mcp.NewToolResultText(formatRecord(rec)), nil
}

// handleListCategories lists categories, subcategories, and per-category counts.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats := s.catalog.Categories()
	if len(cats) == 0 {
		return mcp.NewToolResultText("The catalog is empty."), nil
	}

	counts := s.catalog.ErrorCountByCategory()

	var sb strings.Builder
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("%s (%s) — %d error(s)\n", c.Name, c.ID, counts[c.ID]))
		for _, sub := range s.catalog.Subcategories(c.ID) {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", sub.Name, sub.ID))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleCatalogStats returns catalog totals.
func (s *Server) handleCatalogStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("Catalog contains %d error(s) across %d categor(ies), with %d documented solution(s).",
		s.catalog.TotalErrors(), len(s.catalog.Categories()), s.catalog.TotalSolutions())
	return mcp.NewToolResultText(text), nil
}

// formatSearchResults converts matches into a compact text listing.
func formatSearchResults(results []catalog.ErrorRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("\n%s — %s\n", r.Code, r.Title))
		sb.WriteString(fmt.Sprintf("  Category: %s", r.Category))
		if r.Subcategory != "" {
			sb.WriteString(" / " + r.Subcategory)
		}
		sb.WriteString("\n")
		if r.Description != "" {
			sb.WriteString("  " + r.Description + "\n")
		}
		sb.WriteString(fmt.Sprintf("  Solutions: %d\n", len(r.Solutions)))
	}

	return sb.String()
}

// formatRecord renders one error record with all of its solutions.
func formatRecord(r catalog.ErrorRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s: %s\n\n", r.Code, r.Title))
	if r.Description != "" {
		sb.WriteString(r.Description + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("Category: %s", r.Category))
	if r.Subcategory != "" {
		sb.WriteString(" / " + r.Subcategory)
	}
	sb.WriteString("\n")
	if r.System != "" {
		sb.WriteString("System: " + r.System + "\n")
	}
	if r.Urgency != "" {
		sb.WriteString("Urgency: " + string(r.Urgency) + "\n")
	}
	if r.Frequency != "" {
		sb.WriteString("Frequency: " + r.Frequency + "\n")
	}
	if r.LastUpdate != "" {
		sb.WriteString("Last update: " + r.LastUpdate + "\n")
	}

	for i, sol := range r.Solutions {
		sb.WriteString(fmt.Sprintf("\n## Solution %d: %s\n", i+1, sol.Title))
		sb.WriteString(fmt.Sprintf("Level: %s | Time: %s | Risk: %s\n", sol.Level, sol.Time, sol.Risk))
		for j, step := range sol.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", j+1, step))
		}
	}

	return sb.String()
}
