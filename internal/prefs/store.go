package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/errdex/errdex/internal/db"
)

// settingsKey is the fixed storage slot the aggregate is serialized into.
const settingsKey = "preferences"

// Store owns the mutable preference aggregate: view history, theme, and
// per-solution feedback. Every mutation rewrites the whole serialized
// aggregate immediately; there is no batching. A corrupt or missing blob
// resets the store to defaults rather than failing.
type Store struct {
	db *db.DB

	mu             sync.Mutex
	restored       bool
	history        []HistoryEntry
	theme          Theme
	likes          map[string]bool
	feedbackCounts map[string]int
}

// NewStore creates a Store and restores the persisted aggregate.
func NewStore(database *db.DB) *Store {
	s := &Store{db: database}
	s.reset()
	s.load()
	return s
}

// reset puts all fields back to their defaults.
func (s *Store) reset() {
	s.history = nil
	s.theme = ThemeLight
	s.likes = make(map[string]bool)
	s.feedbackCounts = make(map[string]int)
}

// load restores the aggregate from the settings table. Deserialization
// failures are soft: the store falls back to defaults with a logged
// warning and never surfaces the error.
func (s *Store) load() {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		log.Printf("prefs: reading stored preferences: %v (using defaults)", err)
		return
	}

	var p persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("prefs: corrupt preference blob: %v (resetting to defaults)", err)
		s.reset()
		return
	}

	s.restored = true
	s.history = p.History
	if p.Theme == ThemeDark {
		s.theme = ThemeDark
	}
	for _, l := range p.Likes {
		if l.Liked {
			s.likes[l.Key] = true
		}
	}
	for _, c := range p.FeedbackCounts {
		if c.Count > 0 {
			s.feedbackCounts[c.Key] = c.Count
		}
	}
}

// persist serializes the full aggregate into its settings row.
// Callers must hold s.mu.
func (s *Store) persist() error {
	p := persisted{
		History: s.history,
		Theme:   s.theme,
	}
	for k, v := range s.likes {
		p.Likes = append(p.Likes, likePair{Key: k, Liked: v})
	}
	for k, v := range s.feedbackCounts {
		p.FeedbackCounts = append(p.FeedbackCounts, countPair{Key: k, Count: v})
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serializing preferences: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		settingsKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// ToggleLike flips the liked flag for the given feedback key and returns
// the new state. Liking increments the helpful count; unliking decrements
// it, floored at zero.
func (s *Store) ToggleLike(ctx context.Context, code string, solutionIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FeedbackKey(code, solutionIndex)
	liked := !s.likes[key]
	if liked {
		s.likes[key] = true
		s.feedbackCounts[key]++
	} else {
		delete(s.likes, key)
		if s.feedbackCounts[key] > 0 {
			s.feedbackCounts[key]--
		}
	}

	if err := s.persist(); err != nil {
		return liked, err
	}
	return liked, nil
}

// IsLiked reports whether the feedback key is currently liked.
// Unknown keys are not liked.
func (s *Store) IsLiked(code string, solutionIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likes[FeedbackKey(code, solutionIndex)]
}

// FeedbackCount returns the accumulated helpful count for the key.
// Unknown keys count zero.
func (s *Store) FeedbackCount(code string, solutionIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackCounts[FeedbackKey(code, solutionIndex)]
}

// AddToHistory records a view of the given error: any existing entry with
// the same code is removed, the new entry is prepended with the current
// timestamp, and the list is truncated to MaxHistory.
func (s *Store) AddToHistory(ctx context.Context, code, title, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.history[:0]
	for _, e := range s.history {
		if e.Code != code {
			kept = append(kept, e)
		}
	}

	entry := HistoryEntry{
		Code:      code,
		Title:     title,
		Category:  category,
		Timestamp: time.Now().UTC(),
	}
	s.history = append([]HistoryEntry{entry}, kept...)
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}

	return s.persist()
}

// History returns the view history, most recent first.
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory removes all history entries.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return s.persist()
}

// SetTheme stores the theme choice. Anything other than dark is light.
func (s *Store) SetTheme(ctx context.Context, theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.theme = theme
	return s.persist()
}

// Restored reports whether a persisted aggregate was found on startup.
// A fresh installation has nothing stored yet, so configured defaults
// may still be applied.
func (s *Store) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// Theme returns the stored theme choice.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}
