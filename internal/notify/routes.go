package notify

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the notice API and websocket stream.
func RegisterRoutes(r chi.Router, notifier *Notifier) {
	r.Get("/api/notices", handleList(notifier))
	r.Post("/api/notices", handleCreate(notifier))
	r.Get("/ws/notices", notifier.HandleWS)
}

func handleList(notifier *Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notices := notifier.Active()
		if notices == nil {
			notices = []Notice{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notices)
	}
}

type createRequest struct {
	Message    string `json:"message"`
	Kind       Kind   `json:"kind"`
	DurationMS int    `json:"duration_ms"`
}

// maxMessageLen caps notice text at 500 characters. Longer input is
// truncated rather than rejected.
const maxMessageLen = 500

func clampMessage(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxMessageLen {
		s = string([]rune(s)[:maxMessageLen])
	}
	return s
}

func handleCreate(notifier *Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		req.Message = clampMessage(req.Message)
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		notice := notifier.Notify(req.Message, req.Kind, time.Duration(req.DurationMS)*time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(notice)
	}
}
