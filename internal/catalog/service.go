package catalog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultSuggestLimit caps the number of live search suggestions.
const DefaultSuggestLimit = 8

// MinQueryLen is the shortest query, in characters, that produces
// suggestions.
const MinQueryLen = 2

// Service holds the loaded catalog and answers read-only queries over it.
// The catalog is immutable once loaded, so the service is safe for
// concurrent readers without locking.
type Service struct {
	categories    map[string]Category
	subcategories map[string][]Subcategory
	errors        map[string]ErrorRecord
	codes         []string // sorted, for deterministic iteration
}

// Load fetches and normalizes the catalog from the given source.
func Load(ctx context.Context, src *Source) (*Service, error) {
	data, err := src.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return newService(data), nil
}

// newService normalizes raw catalog data into a queryable Service:
// duplicate codes are dropped first-write-wins, solution risks are mapped
// through the bilingual vocabulary.
func newService(data *rawData) *Service {
	s := &Service{
		categories:    data.categories,
		subcategories: data.subcategories,
		errors:        make(map[string]ErrorRecord, len(data.errors)),
	}

	keys := make([]string, 0, len(data.errors))
	for k := range data.errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec := data.errors[key]
		if rec.Code == "" {
			rec.Code = key
		}
		if _, seen := s.errors[rec.Code]; seen {
			log.Printf("catalog: duplicate error code %q dropped (entry %q)", rec.Code, key)
			continue
		}
		for i := range rec.Solutions {
			rec.Solutions[i].Risk = NormalizeRisk(string(rec.Solutions[i].Risk))
		}
		s.errors[rec.Code] = rec
		s.codes = append(s.codes, rec.Code)
	}
	sort.Strings(s.codes)

	return s
}

// Error returns the record for code, or false when it is unknown.
func (s *Service) Error(code string) (ErrorRecord, bool) {
	rec, ok := s.errors[code]
	return rec, ok
}

// ErrorsByCategory returns all records in the given category, ordered by code.
func (s *Service) ErrorsByCategory(category string) []ErrorRecord {
	var out []ErrorRecord
	for _, code := range s.codes {
		if rec := s.errors[code]; rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// ErrorsBySubcategory returns records matching the category and the
// subcategory display name exactly. Navigation addresses subcategories by
// display name because error records carry the name as free text.
func (s *Service) ErrorsBySubcategory(category, subcategoryName string) []ErrorRecord {
	var out []ErrorRecord
	for _, code := range s.codes {
		rec := s.errors[code]
		if rec.Category == category && rec.Subcategory == subcategoryName {
			out = append(out, rec)
		}
	}
	return out
}

// ErrorsBySubcategoryFuzzy returns records matching the category whose
// subcategory text passes the containment fallback. Callers use it when
// the exact-name lookup comes back empty.
func (s *Service) ErrorsBySubcategoryFuzzy(category, subcategoryName string) []ErrorRecord {
	var out []ErrorRecord
	for _, code := range s.codes {
		rec := s.errors[code]
		if rec.Category == category && MatchesSubcategory(rec.Subcategory, subcategoryName) {
			out = append(out, rec)
		}
	}
	return out
}

// MatchesSubcategory is the bidirectional containment heuristic used when
// an exact subcategory-name match yields no results: both names are
// lowercased and the pair matches if either contains the other. This is
// deliberately loose and can produce false positives for short names
// ("USB" matches anything containing "usb"); that behavior is kept as-is.
func MatchesSubcategory(recordSubcategory, subcategoryName string) bool {
	a := strings.ToLower(recordSubcategory)
	b := strings.ToLower(subcategoryName)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Search returns records where any of code, title, description or category
// contains the query, case-insensitively. Results are ordered by code;
// there is no ranking.
func (s *Service) Search(query string) []ErrorRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []ErrorRecord
	for _, code := range s.codes {
		rec := s.errors[code]
		if strings.Contains(strings.ToLower(rec.Code), q) ||
			strings.Contains(strings.ToLower(rec.Title), q) ||
			strings.Contains(strings.ToLower(rec.Description), q) ||
			strings.Contains(strings.ToLower(rec.Category), q) {
			out = append(out, rec)
		}
	}
	return out
}

// Suggest returns up to limit search matches for live suggestions.
// Queries shorter than MinQueryLen yield nothing. A non-positive limit
// falls back to DefaultSuggestLimit.
func (s *Service) Suggest(query string, limit int) []ErrorRecord {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLen {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	results := s.Search(query)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// CategoryInfo returns the category metadata for id, or false when unknown.
func (s *Service) CategoryInfo(id string) (Category, bool) {
	c, ok := s.categories[id]
	return c, ok
}

// Categories returns all categories sorted by id.
func (s *Service) Categories() []Category {
	ids := make([]string, 0, len(s.categories))
	for id := range s.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Category, 0, len(ids))
	for _, id := range ids {
		c := s.categories[id]
		if c.ID == "" {
			c.ID = id
		}
		out = append(out, c)
	}
	return out
}

// Subcategories returns the ordered subcategories of a category.
func (s *Service) Subcategories(category string) []Subcategory {
	return s.subcategories[category]
}

// Subcategory returns the subcategory with the given id within a category.
func (s *Service) Subcategory(category, id string) (Subcategory, bool) {
	for _, sub := range s.subcategories[category] {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subcategory{}, false
}

// TotalErrors returns the number of loaded error records.
func (s *Service) TotalErrors() int { return len(s.errors) }

// TotalSolutions returns the number of solutions across all records.
func (s *Service) TotalSolutions() int {
	n := 0
	for _, rec := range s.errors {
		n += len(rec.Solutions)
	}
	return n
}

// ErrorCountByCategory returns how many records each category holds.
func (s *Service) ErrorCountByCategory() map[string]int {
	counts := make(map[string]int, len(s.categories))
	for _, rec := range s.errors {
		counts[rec.Category]++
	}
	return counts
}
