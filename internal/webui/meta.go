package webui

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/errdex/errdex/internal/catalog"
)

// PageMeta carries the per-view SEO metadata rendered into <head>.
type PageMeta struct {
	Title       string
	Description string
}

// metaFor computes the page title and meta description for a view.
func (u *WebUI) metaFor(n NavState) PageMeta {
	switch n.View {
	case ViewSubcategories:
		return PageMeta{
			Title:       fmt.Sprintf("%s — %s", n.Category.Name, u.siteName),
			Description: fmt.Sprintf("Browse %s error codes by subcategory.", n.Category.Name),
		}
	case ViewErrors:
		return PageMeta{
			Title:       fmt.Sprintf("%s / %s — %s", n.Category.Name, n.Subcategory.Name, u.siteName),
			Description: fmt.Sprintf("Error codes in %s / %s with step-by-step solutions.", n.Category.Name, n.Subcategory.Name),
		}
	case ViewDetail:
		if n.Record != nil {
			desc := truncateDescription(n.Record.Description, 160)
			return PageMeta{
				Title:       fmt.Sprintf("%s: %s — %s", n.Record.Code, n.Record.Title, u.siteName),
				Description: desc,
			}
		}
	case ViewNoResults:
		return PageMeta{
			Title:       "No results — " + u.siteName,
			Description: "Nothing matched your request.",
		}
	}
	return PageMeta{
		Title:       u.siteName + " — error code knowledge base",
		Description: "Browse and search error codes by category, with solutions for every skill level.",
	}
}

// truncateDescription caps a meta description at max characters, cutting
// on a rune boundary so multi-byte text stays valid UTF-8.
func truncateDescription(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// structuredData renders the schema.org JSON-LD block for an error detail
// page: a TechArticle with one HowTo per solution.
func structuredData(rec catalog.ErrorRecord, siteName string) template.JS {
	type howToStep struct {
		Type string `json:"@type"`
		Text string `json:"text"`
	}
	type howTo struct {
		Type  string      `json:"@type"`
		Name  string      `json:"name"`
		Steps []howToStep `json:"step"`
	}

	doc := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "TechArticle",
		"headline":    fmt.Sprintf("%s: %s", rec.Code, rec.Title),
		"description": rec.Description,
		"publisher":   map[string]string{"@type": "Organization", "name": siteName},
	}
	if rec.LastUpdate != "" {
		doc["dateModified"] = rec.LastUpdate
	}

	var howTos []howTo
	for _, sol := range rec.Solutions {
		h := howTo{Type: "HowTo", Name: sol.Title}
		for _, step := range sol.Steps {
			h.Steps = append(h.Steps, howToStep{Type: "HowToStep", Text: step})
		}
		howTos = append(howTos, h)
	}
	if len(howTos) > 0 {
		doc["hasPart"] = howTos
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(data)
}
