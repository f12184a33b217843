package embedder

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dwijnand/servo/internal/errors"
)

// iconFrame is the wire shape of one notice.
type iconFrame struct {
	URL   string `json:"url"`
	Sizes string `json:"sizes,omitempty"`
}

// Bridge streams icon notices to connected websocket clients as JSON frames.
//
// It is both a Channel (engine side) and an http.Handler (embedder side).
// Clients that cannot be written to are dropped; notices sent while no
// client is connected are discarded, matching the channel's fire-and-forget
// contract.
type Bridge struct {
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	writeTimeout time.Duration

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the bridge's logger.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithWriteTimeout sets the per-frame write deadline (default 5s).
func WithWriteTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.writeTimeout = d
	}
}

// WithCheckOrigin sets the upgrader's origin check.
func WithCheckOrigin(check func(*http.Request) bool) BridgeOption {
	return func(b *Bridge) {
		b.upgrader.CheckOrigin = check
	}
}

// NewBridge creates a websocket bridge.
func NewBridge(opts ...BridgeOption) *Bridge {
	b := &Bridge{
		logger:       slog.Default(),
		writeTimeout: 5 * time.Second,
		conns:        make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ServeHTTP upgrades the request and registers the client for notices.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("embedder upgrade failed", "error", err)
		return
	}

	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()

	// Clients never send application frames; the read loop only exists to
	// observe the close.
	go func() {
		defer b.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					b.logger.Debug("embedder client read error", "error", err)
				}
				return
			}
		}
	}()
}

// NewIcon implements Channel by broadcasting the notice to every client.
func (b *Bridge) NewIcon(ic Icon) {
	frame := iconFrame{URL: ic.URL.String(), Sizes: ic.Sizes}

	b.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(b.conns))
	for conn := range b.conns {
		conns = append(conns, conn)
	}
	b.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(b.writeTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			b.logger.Warn("embedder notice dropped",
				"error", errors.FromError(err, "E042").FormatCompact())
			b.drop(conn)
		}
	}
}

// ClientCount returns the number of connected embedder clients.
func (b *Bridge) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

// Close disconnects all clients.
func (b *Bridge) Close() {
	b.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(b.conns))
	for conn := range b.conns {
		conns = append(conns, conn)
	}
	b.conns = make(map[*websocket.Conn]struct{})
	b.mu.Unlock()

	for _, conn := range conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

func (b *Bridge) drop(conn *websocket.Conn) {
	b.mu.Lock()
	_, ok := b.conns[conn]
	delete(b.conns, conn)
	b.mu.Unlock()
	if ok {
		conn.Close()
	}
}
