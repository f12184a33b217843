package embedder

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialBridge(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitClients(t *testing.T, b *Bridge, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", b.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBridgeBroadcast(t *testing.T) {
	bridge := NewBridge()
	defer bridge.Close()

	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, srv)
	defer conn.Close()
	waitClients(t, bridge, 1)

	u, _ := url.Parse("https://example.com/favicon.ico")
	bridge.NewIcon(Icon{URL: u, Sizes: "32x32"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var frame struct {
		URL   string `json:"url"`
		Sizes string `json:"sizes"`
	}
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.URL != "https://example.com/favicon.ico" {
		t.Errorf("url = %q", frame.URL)
	}
	if frame.Sizes != "32x32" {
		t.Errorf("sizes = %q", frame.Sizes)
	}
}

func TestBridgeDropsClosedClient(t *testing.T) {
	bridge := NewBridge()
	defer bridge.Close()

	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, srv)
	waitClients(t, bridge, 1)

	conn.Close()
	waitClients(t, bridge, 0)

	// Broadcasting with no clients is a no-op.
	u, _ := url.Parse("https://example.com/favicon.ico")
	bridge.NewIcon(Icon{URL: u})
}
