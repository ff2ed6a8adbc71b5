package notify

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Kind classifies a notice for presentation.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// DefaultDuration is how long a notice stays visible unless the caller
// asks otherwise.
const DefaultDuration = 3 * time.Second

// linger keeps an expired notice around long enough for the client's
// fade-out animation before pruning removes it.
const linger = 300 * time.Millisecond

// Notice is one transient status message. Notices are independent: there
// is no queue, no cap, and overlapping notices each run their own timer.
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client pairs a websocket connection with a write lock. Gorilla
// connections allow only one concurrent writer, so every push goes
// through write.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(notice Notice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(notice)
}

// Notifier holds the active notices and pushes new ones to connected
// websocket clients.
type Notifier struct {
	mu      sync.Mutex
	notices []Notice
	conns   map[*websocket.Conn]*client

	now func() time.Time // injectable for tests
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{
		conns: make(map[*websocket.Conn]*client),
		now:   time.Now,
	}
}

// Notify records a transient notice and pushes it to connected clients.
// A non-positive duration falls back to DefaultDuration.
func (n *Notifier) Notify(message string, kind Kind, duration time.Duration) Notice {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if kind == "" {
		kind = KindInfo
	}

	now := n.now()
	notice := Notice{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}

	n.mu.Lock()
	n.prune(now)
	n.notices = append(n.notices, notice)
	clients := make([]*client, 0, len(n.conns))
	for _, c := range n.conns {
		clients = append(clients, c)
	}
	n.mu.Unlock()

	for _, c := range clients {
		if err := c.write(notice); err != nil {
			n.drop(c.conn)
		}
	}
	return notice
}

// Active returns the notices that have not yet expired, oldest first.
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prune(n.now())
	out := make([]Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

// prune drops notices past their expiry plus the fade-out linger.
// Callers must hold n.mu.
func (n *Notifier) prune(now time.Time) {
	kept := n.notices[:0]
	for _, notice := range n.notices {
		if now.Before(notice.ExpiresAt.Add(linger)) {
			kept = append(kept, notice)
		}
	}
	n.notices = kept
}

// HandleWS upgrades the request to a websocket and streams new notices to
// the client until it disconnects. Incoming frames are discarded.
func (n *Notifier) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("notify: websocket upgrade: %v", err)
		return
	}

	n.mu.Lock()
	n.conns[conn] = &client{conn: conn}
	n.mu.Unlock()

	defer n.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("notify: websocket read: %v", err)
			}
			return
		}
	}
}

func (n *Notifier) drop(conn *websocket.Conn) {
	n.mu.Lock()
	delete(n.conns, conn)
	n.mu.Unlock()
	conn.Close()
}
