package prefs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the preference API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/prefs", func(r chi.Router) {
		r.Get("/history", handleHistory(store))
		r.Delete("/history", handleClearHistory(store))
		r.Get("/theme", handleGetTheme(store))
		r.Put("/theme", handleSetTheme(store))
		r.Post("/likes/{code}/{index}/toggle", handleToggleLike(store))
		r.Get("/likes/{code}/{index}", handleGetLike(store))
	})
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history := store.History()
		if history == nil {
			history = []HistoryEntry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(history)
	}
}

func handleClearHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearHistory(r.Context()); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
	}
}

func handleGetTheme(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]Theme{"theme": store.Theme()})
	}
}

type themeRequest struct {
	Theme Theme `json:"theme"`
}

func handleSetTheme(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req themeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Theme != ThemeLight && req.Theme != ThemeDark {
			http.Error(w, `{"error":"theme must be light or dark"}`, http.StatusBadRequest)
			return
		}
		if err := store.SetTheme(r.Context(), req.Theme); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]Theme{"theme": req.Theme})
	}
}

// likeResponse is the JSON shape for like lookups and toggles.
type likeResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

func handleToggleLike(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			http.Error(w, `{"error":"invalid solution index"}`, http.StatusBadRequest)
			return
		}

		liked, err := store.ToggleLike(r.Context(), code, index)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(likeResponse{
			Liked: liked,
			Count: store.FeedbackCount(code, index),
		})
	}
}

func handleGetLike(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			http.Error(w, `{"error":"invalid solution index"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(likeResponse{
			Liked: store.IsLiked(code, index),
			Count: store.FeedbackCount(code, index),
		})
	}
}
