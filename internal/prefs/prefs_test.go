package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/errdex/errdex/internal/db"
)

func setupTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	liked, err := store.ToggleLike(ctx, "E1", 0)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}
	if !store.IsLiked("E1", 0) {
		t.Error("expected IsLiked true after like")
	}
	if got := store.FeedbackCount("E1", 0); got != 1 {
		t.Errorf("expected count 1, got %d", got)
	}

	liked, _ = store.ToggleLike(ctx, "E1", 0)
	if liked {
		t.Error("expected second toggle to unlike")
	}
	if store.IsLiked("E1", 0) {
		t.Error("expected IsLiked false after unlike")
	}
	if got := store.FeedbackCount("E1", 0); got != 0 {
		t.Errorf("expected count back to 0, got %d", got)
	}
}

func TestFeedbackCountNeverNegative(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()
	ctx := context.Background()

	// Seed a blob where the key is liked but its count is already zero;
	// unliking must not drive the count negative.
	blob := `{"history":[],"theme":"light","likes":[["E1-2",true]],"feedbackCounts":[]}`
	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, settingsKey, blob); err != nil {
		t.Fatalf("seeding blob: %v", err)
	}

	store := NewStore(database)
	if !store.IsLiked("E1", 2) {
		t.Fatal("expected seeded like")
	}
	liked, _ := store.ToggleLike(ctx, "E1", 2)
	if liked {
		t.Error("expected toggle to unlike")
	}
	if got := store.FeedbackCount("E1", 2); got != 0 {
		t.Errorf("expected count floored at 0, got %d", got)
	}
}

func TestUnknownKeysDefault(t *testing.T) {
	store, _ := setupTestStore(t)

	if store.IsLiked("missing", 9) {
		t.Error("expected unknown key to be unliked")
	}
	if got := store.FeedbackCount("missing", 9); got != 0 {
		t.Errorf("expected count 0 for unknown key, got %d", got)
	}
}

func TestSolutionsTrackedIndependently(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	store.ToggleLike(ctx, "E1", 0)
	store.ToggleLike(ctx, "E1", 1)
	store.ToggleLike(ctx, "E1", 0)

	if store.IsLiked("E1", 0) {
		t.Error("expected solution 0 unliked")
	}
	if !store.IsLiked("E1", 1) {
		t.Error("expected solution 1 still liked")
	}
}

func TestHistoryDedupAndCap(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		code := fmt.Sprintf("E%02d", i)
		if err := store.AddToHistory(ctx, code, "title "+code, "os"); err != nil {
			t.Fatalf("AddToHistory: %v", err)
		}
	}

	history := store.History()
	if len(history) != MaxHistory {
		t.Fatalf("expected history capped at %d, got %d", MaxHistory, len(history))
	}
	if history[0].Code != "E24" {
		t.Errorf("expected most recent first, got %q", history[0].Code)
	}

	// Re-viewing an existing code moves it to the front without growing
	// the list or duplicating the code.
	store.AddToHistory(ctx, "E10", "title E10", "os")
	history = store.History()
	if len(history) != MaxHistory {
		t.Fatalf("expected length unchanged, got %d", len(history))
	}
	if history[0].Code != "E10" {
		t.Errorf("expected re-viewed code at front, got %q", history[0].Code)
	}
	seen := map[string]bool{}
	for _, e := range history {
		if seen[e.Code] {
			t.Fatalf("duplicate code in history: %q", e.Code)
		}
		seen[e.Code] = true
	}
}

func TestClearHistory(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	store.AddToHistory(ctx, "E1", "t", "os")
	if err := store.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if got := store.History(); len(got) != 0 {
		t.Errorf("expected empty history, got %d entries", len(got))
	}
}

func TestTheme(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if store.Theme() != ThemeLight {
		t.Errorf("expected default theme light, got %q", store.Theme())
	}
	store.SetTheme(ctx, ThemeDark)
	if store.Theme() != ThemeDark {
		t.Errorf("expected dark, got %q", store.Theme())
	}
	// Unrecognized values normalize to light.
	store.SetTheme(ctx, Theme("solarized"))
	if store.Theme() != ThemeLight {
		t.Errorf("expected light, got %q", store.Theme())
	}
}

func TestPersistenceAcrossRestart(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()
	ctx := context.Background()

	store := NewStore(database)
	store.ToggleLike(ctx, "E1", 0)
	store.ToggleLike(ctx, "E1", 0)
	store.ToggleLike(ctx, "E2", 1)
	store.AddToHistory(ctx, "E2", "boot loop", "os")
	store.SetTheme(ctx, ThemeDark)

	// A second store over the same database sees the persisted aggregate.
	reloaded := NewStore(database)
	if !reloaded.IsLiked("E2", 1) {
		t.Error("expected like to survive restart")
	}
	if reloaded.IsLiked("E1", 0) {
		t.Error("expected unliked key to stay unliked")
	}
	if reloaded.Theme() != ThemeDark {
		t.Errorf("expected dark theme, got %q", reloaded.Theme())
	}
	history := reloaded.History()
	if len(history) != 1 || history[0].Code != "E2" {
		t.Errorf("unexpected history after restart: %+v", history)
	}
}

func TestRestored(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()
	ctx := context.Background()

	fresh := NewStore(database)
	if fresh.Restored() {
		t.Error("fresh database should not report a restored aggregate")
	}

	fresh.SetTheme(ctx, ThemeDark)
	reloaded := NewStore(database)
	if !reloaded.Restored() {
		t.Error("expected restored aggregate after a persisted write")
	}
}

func TestCorruptBlobResetsToDefaults(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	_, err = database.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`,
		settingsKey, "{not valid json")
	if err != nil {
		t.Fatalf("seeding corrupt blob: %v", err)
	}

	store := NewStore(database)
	if got := store.History(); len(got) != 0 {
		t.Errorf("expected empty history after corrupt load, got %d", len(got))
	}
	if store.Theme() != ThemeLight {
		t.Errorf("expected default theme, got %q", store.Theme())
	}
	if store.IsLiked("E1", 0) {
		t.Error("expected no likes after corrupt load")
	}
}

func TestPersistedBlobShape(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()

	store.ToggleLike(ctx, "E1", 0)

	var raw string
	if err := database.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw); err != nil {
		t.Fatalf("reading blob: %v", err)
	}

	// Likes and counts are stored as [key, value] tuples.
	var blob struct {
		Likes          [][]json.RawMessage `json:"likes"`
		FeedbackCounts [][]json.RawMessage `json:"feedbackCounts"`
		Theme          string              `json:"theme"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		t.Fatalf("decoding blob: %v", err)
	}
	if len(blob.Likes) != 1 || string(blob.Likes[0][0]) != `"E1-0"` {
		t.Errorf("unexpected likes shape: %s", raw)
	}
	if blob.Theme != "light" {
		t.Errorf("unexpected theme in blob: %q", blob.Theme)
	}
}

// HTTP handler tests

func newTestRouter(t *testing.T) (chi.Router, *Store) {
	store, _ := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestRoute_ToggleLike(t *testing.T) {
	r, store := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/prefs/likes/E1/0/toggle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp likeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Liked || resp.Count != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !store.IsLiked("E1", 0) {
		t.Error("expected store to record the like")
	}
}

func TestRoute_ToggleLikeBadIndex(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/prefs/likes/E1/abc/toggle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRoute_ThemeRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/api/prefs/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/prefs/theme", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]Theme
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["theme"] != ThemeDark {
		t.Errorf("expected dark, got %q", resp["theme"])
	}
}

func TestRoute_ThemeRejectsUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/api/prefs/theme", strings.NewReader(`{"theme":"sepia"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRoute_HistoryListAndClear(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()

	store.AddToHistory(ctx, "E1", "t1", "os")
	store.AddToHistory(ctx, "E2", "t2", "os")

	req := httptest.NewRequest("GET", "/api/prefs/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var history []HistoryEntry
	json.Unmarshal(w.Body.Bytes(), &history)
	if len(history) != 2 || history[0].Code != "E2" {
		t.Errorf("unexpected history: %+v", history)
	}

	req = httptest.NewRequest("DELETE", "/api/prefs/history", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(store.History()) != 0 {
		t.Error("expected history cleared")
	}
}
