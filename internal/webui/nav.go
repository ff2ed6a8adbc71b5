package webui

import "github.com/errdex/errdex/internal/catalog"

// View names one of the renderable view states.
type View string

const (
	ViewCategories    View = "categories"
	ViewSubcategories View = "subcategories"
	ViewErrors        View = "errors"
	ViewDetail        View = "detail"
	ViewNoResults     View = "noresults"
)

// NavState is the explicit navigation state for one render. It is built
// from the request URL each time, never stored, so a parent view always
// reflects the current selection.
type NavState struct {
	View        View
	Category    catalog.Category
	Subcategory catalog.Subcategory
	Record      *catalog.ErrorRecord
	Page        int
}

// Crumb is one breadcrumb trail segment.
type Crumb struct {
	Label string
	URL   string
}

// Breadcrumbs derives the trail for the current state. The last crumb has
// no URL.
func (n NavState) Breadcrumbs() []Crumb {
	crumbs := []Crumb{{Label: "Home", URL: "/"}}

	switch n.View {
	case ViewCategories:
		return crumbs[:0] // no trail on the landing view
	case ViewSubcategories:
		crumbs = append(crumbs, Crumb{Label: n.Category.Name})
	case ViewErrors:
		crumbs = append(crumbs,
			Crumb{Label: n.Category.Name, URL: "/c/" + n.Category.ID},
			Crumb{Label: n.Subcategory.Name})
	case ViewDetail:
		if n.Category.Name != "" {
			crumbs = append(crumbs, Crumb{Label: n.Category.Name, URL: "/c/" + n.Category.ID})
		}
		if n.Record != nil {
			crumbs = append(crumbs, Crumb{Label: n.Record.Code})
		}
	case ViewNoResults:
		crumbs = append(crumbs, Crumb{Label: "No results"})
	}
	return crumbs
}

// PageControl is one numbered pagination button.
type PageControl struct {
	Number int
	Active bool
}

// BuildPagination returns one control per page when the set spans more
// than a single page, and nothing at all when it fits on one.
func BuildPagination(total, page, size int) []PageControl {
	if size <= 0 || total <= size {
		return nil
	}
	pages := (total + size - 1) / size
	controls := make([]PageControl, 0, pages)
	for i := 1; i <= pages; i++ {
		controls = append(controls, PageControl{Number: i, Active: i == page})
	}
	return controls
}

// Paginate slices one page out of records. Out-of-range pages produce an
// empty slice rather than an error.
func Paginate(records []catalog.ErrorRecord, page, size int) []catalog.ErrorRecord {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(records) {
		return nil
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
