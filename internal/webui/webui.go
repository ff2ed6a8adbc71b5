// Package webui renders the browsable knowledge-base views: the category
// grid, subcategory grid, paginated error list, error detail, and the
// terminal no-results view. Navigation state is recomputed from the URL on
// every request, so views never carry stale selection context.
package webui

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/errdex/errdex/internal/analytics"
	"github.com/errdex/errdex/internal/catalog"
	"github.com/errdex/errdex/internal/notify"
	"github.com/errdex/errdex/internal/prefs"
)

// PageSize is the fixed number of error records per list page.
const PageSize = 6

// WebUI serves the server-rendered knowledge-base views.
type WebUI struct {
	catalog   *catalog.Service
	prefs     *prefs.Store
	notifier  *notify.Notifier
	analytics *analytics.Client
	siteName  string
	tmpl      *template.Template
}

// New creates a WebUI over the given collaborators.
func New(cat *catalog.Service, store *prefs.Store, notifier *notify.Notifier, an *analytics.Client, siteName string) *WebUI {
	if siteName == "" {
		siteName = "errdex"
	}
	return &WebUI{
		catalog:   cat,
		prefs:     store,
		notifier:  notifier,
		analytics: an,
		siteName:  siteName,
		tmpl:      parseTemplates(),
	}
}

// RegisterRoutes mounts all UI routes onto the given router.
func (u *WebUI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.handleCategories)
	r.Get("/c/{category}", u.handleSubcategories)
	r.Get("/c/{category}/s/{subcategory}", u.handleErrorList)
	r.Get("/e/{code}", u.handleErrorDetail)
	r.Post("/e/{code}/solutions/{index}/like", u.handleLike)
	r.Get("/search", u.handleSearch)
	r.Get("/api/suggest", u.handleSuggest)
}

// handleCategories renders the initial category grid.
func (u *WebUI) handleCategories(w http.ResponseWriter, r *http.Request) {
	nav := NavState{View: ViewCategories}
	counts := u.catalog.ErrorCountByCategory()

	type categoryCard struct {
		catalog.Category
		Count int
	}
	var cards []categoryCard
	for _, c := range u.catalog.Categories() {
		cards = append(cards, categoryCard{Category: c, Count: counts[c.ID]})
	}

	u.render(w, "categories", pageData{
		Nav:  nav,
		Meta: u.metaFor(nav),
		Data: map[string]interface{}{
			"Cards":          cards,
			"TotalErrors":    u.catalog.TotalErrors(),
			"TotalSolutions": u.catalog.TotalSolutions(),
			"History":        u.prefs.History(),
		},
	})
}

// handleSubcategories renders the subcategory grid for one category.
func (u *WebUI) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category")
	info, ok := u.catalog.CategoryInfo(categoryID)
	if !ok {
		u.renderNoResults(w, "Unknown category", http.StatusNotFound)
		return
	}
	info.ID = categoryID

	nav := NavState{View: ViewSubcategories, Category: info}
	u.render(w, "subcategories", pageData{
		Nav:  nav,
		Meta: u.metaFor(nav),
		Data: map[string]interface{}{
			"Subcategories": u.catalog.Subcategories(categoryID),
		},
	})
}

// handleErrorList renders one page of errors for a subcategory. The exact
// display-name match is tried first; an empty result falls back to the
// containment heuristic.
func (u *WebUI) handleErrorList(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category")
	subID := chi.URLParam(r, "subcategory")

	info, ok := u.catalog.CategoryInfo(categoryID)
	if !ok {
		u.renderNoResults(w, "Unknown category", http.StatusNotFound)
		return
	}
	info.ID = categoryID

	sub, ok := u.catalog.Subcategory(categoryID, subID)
	if !ok {
		u.renderNoResults(w, "Unknown subcategory", http.StatusNotFound)
		return
	}

	records := u.catalog.ErrorsBySubcategory(categoryID, sub.Name)
	if len(records) == 0 {
		records = u.catalog.ErrorsBySubcategoryFuzzy(categoryID, sub.Name)
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	nav := NavState{View: ViewErrors, Category: info, Subcategory: sub, Page: page}
	u.render(w, "errors", pageData{
		Nav:  nav,
		Meta: u.metaFor(nav),
		Data: map[string]interface{}{
			"Records":    Paginate(records, page, PageSize),
			"Pagination": BuildPagination(len(records), page, PageSize),
			"Total":      len(records),
		},
	})
}

// handleErrorDetail renders one error record with its solutions, records
// the view in history, and tags an analytics event. An invalid code never
// reaches the catalog lookup.
func (u *WebUI) handleErrorDetail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !ValidCode(code) {
		u.renderNoResults(w, "Invalid error code", http.StatusNotFound)
		return
	}

	rec, ok := u.catalog.Error(code)
	if !ok {
		u.renderNoResults(w, "No error found for code "+code, http.StatusNotFound)
		return
	}

	if err := u.prefs.AddToHistory(r.Context(), rec.Code, rec.Title, rec.Category); err != nil {
		log.Printf("webui: recording history for %s: %v", rec.Code, err)
	}
	u.analytics.Track("error", "view", rec.Code)

	info, _ := u.catalog.CategoryInfo(rec.Category)
	info.ID = rec.Category

	type solutionView struct {
		catalog.Solution
		Index     int
		StepsHTML []template.HTML
		Liked     bool
		Count     int
	}
	var solutions []solutionView
	for i, sol := range rec.Solutions {
		sv := solutionView{
			Solution: sol,
			Index:    i,
			Liked:    u.prefs.IsLiked(rec.Code, i),
			Count:    u.prefs.FeedbackCount(rec.Code, i),
		}
		for _, step := range sol.Steps {
			sv.StepsHTML = append(sv.StepsHTML, renderMarkdown(step))
		}
		solutions = append(solutions, sv)
	}

	nav := NavState{View: ViewDetail, Category: info, Record: &rec}
	u.render(w, "detail", pageData{
		Nav:  nav,
		Meta: u.metaFor(nav),
		Data: map[string]interface{}{
			"Record":    rec,
			"Solutions": solutions,
			"JSONLD":    structuredData(rec, u.siteName),
		},
	})
}

// handleLike toggles the liked flag for one solution and returns the new
// state as JSON for the in-page button.
func (u *WebUI) handleLike(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if !ValidCode(code) || err != nil || index < 0 {
		http.Error(w, `{"error":"invalid feedback key"}`, http.StatusBadRequest)
		return
	}
	rec, ok := u.catalog.Error(code)
	if !ok {
		http.Error(w, `{"error":"unknown error code"}`, http.StatusNotFound)
		return
	}
	if index >= len(rec.Solutions) {
		http.Error(w, `{"error":"unknown solution"}`, http.StatusNotFound)
		return
	}

	liked, err := u.prefs.ToggleLike(r.Context(), code, index)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	action := "unlike"
	if liked {
		action = "like"
		u.notifier.Notify("Thanks for the feedback!", notify.KindSuccess, 0)
	}
	u.analytics.Track("feedback", action, prefs.FeedbackKey(code, index))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"liked": liked,
		"count": u.prefs.FeedbackCount(code, index),
	})
}

// handleSearch jumps straight to the first match's detail view. There is
// no results list for search; a miss lands on the no-results view.
func (u *WebUI) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !ValidQuery(query) {
		u.renderNoResults(w, "Search query is too long", http.StatusBadRequest)
		return
	}

	u.analytics.Track("search", "query", query)

	results := u.catalog.Search(query)
	if len(results) == 0 {
		u.renderNoResults(w, "Nothing found for \""+query+"\"", http.StatusOK)
		return
	}
	http.Redirect(w, r, "/e/"+results[0].Code, http.StatusSeeOther)
}

// suggestItem is one entry in the live-suggestion dropdown.
type suggestItem struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// handleSuggest returns capped live suggestions for the search box. The
// client debounces keystrokes; queries shorter than two characters or
// failing validation are suppressed server-side as well.
func (u *WebUI) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items := []suggestItem{}
	if ValidQuery(query) {
		for _, rec := range u.catalog.Suggest(query, catalog.DefaultSuggestLimit) {
			items = append(items, suggestItem{Code: rec.Code, Title: rec.Title, Category: rec.Category})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// renderNoResults renders the terminal no-results view.
func (u *WebUI) renderNoResults(w http.ResponseWriter, message string, status int) {
	nav := NavState{View: ViewNoResults}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	u.renderStatus(w, "noresults", pageData{
		Nav:  nav,
		Meta: u.metaFor(nav),
		Data: map[string]interface{}{"Message": message},
	})
}

// pageData is the payload every view template receives.
type pageData struct {
	Nav      NavState
	Meta     PageMeta
	SiteName string
	Theme    prefs.Theme
	Data     map[string]interface{}
}

func (u *WebUI) render(w http.ResponseWriter, view string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	u.renderStatus(w, view, data)
}

func (u *WebUI) renderStatus(w http.ResponseWriter, view string, data pageData) {
	data.SiteName = u.siteName
	data.Theme = u.prefs.Theme()
	if err := u.tmpl.ExecuteTemplate(w, view, data); err != nil {
		log.Printf("webui: rendering %s: %v", view, err)
	}
}
