package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one tagged interaction, shaped as the (category, action, label)
// triple the external sink expects.
type Event struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Action    string    `json:"action"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}

// Client posts events to an external analytics sink. Tracking is fire and
// forget: delivery runs in the background, failures are swallowed, and an
// empty endpoint disables the client entirely. The sink being unavailable
// must never affect the caller.
type Client struct {
	endpoint string
	client   *http.Client
	verbose  bool

	wg sync.WaitGroup
}

// New creates a Client for the given endpoint. An empty endpoint returns a
// disabled client whose Track is a no-op.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Enabled reports whether events will actually be sent.
func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// Track tags an event and returns immediately. Delivery happens in the
// background and any failure is dropped (logged only in verbose mode).
func (c *Client) Track(category, action, label string) {
	if !c.Enabled() {
		return
	}

	ev := Event{
		ID:        uuid.New().String(),
		Category:  category,
		Action:    action,
		Label:     label,
		Timestamp: time.Now().UTC(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.send(ev); err != nil && c.verbose {
			log.Printf("analytics: dropping event %s/%s: %v", category, action, err)
		}
	}()
}

// SetVerbose enables logging of dropped events.
func (c *Client) SetVerbose(v bool) { c.verbose = v }

// Flush waits for in-flight deliveries, bounded by the context.
func (c *Client) Flush(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (c *Client) send(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
