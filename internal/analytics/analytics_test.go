package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestTrackDeliversEvent(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev Event
		json.NewDecoder(r.Body).Decode(&ev)
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Track("error", "view", "E-NET-001")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Flush(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	ev := received[0]
	if ev.Category != "error" || ev.Action != "view" || ev.Label != "E-NET-001" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.ID == "" || ev.Timestamp.IsZero() {
		t.Errorf("expected ID and timestamp to be set: %+v", ev)
	}
}

func TestDisabledClientIsNoOp(t *testing.T) {
	c := New("")
	if c.Enabled() {
		t.Error("expected empty endpoint to disable client")
	}
	// Must not panic or block.
	c.Track("error", "view", "E1")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	c.Flush(ctx)
}

func TestSinkFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Track("search", "query", "boot")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Flush(ctx) // must return despite the failed delivery
}

func TestUnreachableSinkIsSwallowed(t *testing.T) {
	c := New("http://127.0.0.1:1/nowhere")
	c.Track("feedback", "like", "E1-0")

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()
	c.Flush(ctx)
}
