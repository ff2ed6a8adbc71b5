package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source fetches the three catalog resources over plain HTTP GET.
type Source struct {
	CategoriesURL    string
	SubcategoriesURL string
	ErrorsURL        string

	client *http.Client
}

// NewSource creates a Source for the given resource URLs.
func NewSource(categoriesURL, subcategoriesURL, errorsURL string) *Source {
	return &Source{
		CategoriesURL:    categoriesURL,
		SubcategoriesURL: subcategoriesURL,
		ErrorsURL:        errorsURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// rawData is the decoded shape of the three catalog documents.
type rawData struct {
	categories    map[string]Category
	subcategories map[string][]Subcategory
	errors        map[string]ErrorRecord
}

// fetch retrieves all three resources concurrently. A resource that fails
// to download or decode is replaced by an empty dataset with a logged
// warning; only context cancellation aborts the whole fetch.
func (s *Source) fetch(ctx context.Context) (*rawData, error) {
	data := &rawData{
		categories:    map[string]Category{},
		subcategories: map[string][]Subcategory{},
		errors:        map[string]ErrorRecord{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fetchJSON(gctx, s.client, s.CategoriesURL, &data.categories)
	})
	g.Go(func() error {
		return fetchJSON(gctx, s.client, s.SubcategoriesURL, &data.subcategories)
	})
	g.Go(func() error {
		return fetchJSON(gctx, s.client, s.ErrorsURL, &data.errors)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// fetchJSON downloads and decodes one resource into dst. Load failures are
// soft: dst is left empty and a warning is logged, including a decode
// failure partway through the document. Context cancellation is the only
// error propagated to the caller.
func fetchJSON[T any](ctx context.Context, client *http.Client, url string, dst *T) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("catalog: building request for %s: %v", url, err)
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("catalog: fetching %s: %v (using empty dataset)", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("catalog: fetching %s: status %d (using empty dataset)", url, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("catalog: reading %s: %v (using empty dataset)", url, err)
		return nil
	}
	var decoded T
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Printf("catalog: decoding %s: %v (using empty dataset)", url, err)
		return nil
	}
	*dst = decoded
	return nil
}

// LoadFromFiles decodes the three catalog documents from raw JSON bytes.
// Used by tests and by commands that read a local catalog snapshot.
func LoadFromFiles(categories, subcategories, errors []byte) (*Service, error) {
	data := &rawData{
		categories:    map[string]Category{},
		subcategories: map[string][]Subcategory{},
		errors:        map[string]ErrorRecord{},
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &data.categories); err != nil {
			return nil, fmt.Errorf("decoding categories: %w", err)
		}
	}
	if len(subcategories) > 0 {
		if err := json.Unmarshal(subcategories, &data.subcategories); err != nil {
			return nil, fmt.Errorf("decoding subcategories: %w", err)
		}
	}
	if len(errors) > 0 {
		if err := json.Unmarshal(errors, &data.errors); err != nil {
			return nil, fmt.Errorf("decoding errors: %w", err)
		}
	}
	return newService(data), nil
}
