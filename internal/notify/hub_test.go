package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func TestNotifyWithNoSubscribersIsNoOp(t *testing.T) {
	hub := NewHub(nil)
	// must not panic or block
	hub.Notify("orders", map[string]string{"status": "success"})
	if n := hub.Subscribers(); n != 0 {
		t.Fatalf("subscribers = %d, want 0", n)
	}
}

func TestNotifyReachesAttachedPage(t *testing.T) {
	hub := NewHub(nil)

	e := echo.New()
	e.GET("/ws", hub.Handle)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// registration happens in the handler before Handle returns; poll briefly
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", hub.Subscribers())
	}

	hub.Notify("orders", map[string]string{"status": "success"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Topic   string            `json:"topic"`
		Payload map[string]string `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Topic != "orders" || msg.Payload["status"] != "success" {
		t.Fatalf("message = %+v, want orders/success", msg)
	}
}

func TestStalledPageDoesNotBlockBroadcasts(t *testing.T) {
	hub := NewHub(nil)

	e := echo.New()
	e.GET("/ws", hub.Handle)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", hub.Subscribers())
	}

	// the page never reads; keep broadcasting until its buffers fill. The
	// write deadline has to fire and drop the connection instead of holding
	// the hub mutex forever.
	payload := strings.Repeat("x", 1<<20)
	start := time.Now()
	for i := 0; i < 64 && hub.Subscribers() > 0; i++ {
		hub.Notify("orders", payload)
	}
	if hub.Subscribers() != 0 {
		t.Fatalf("stalled page was never dropped")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("broadcasts blocked for %v on a stalled page", elapsed)
	}

	// later broadcasts go back to being a cheap no-op
	hub.Notify("orders", "after drop")
}

func TestClosedPageIsDropped(t *testing.T) {
	hub := NewHub(nil)

	e := echo.New()
	e.GET("/ws", hub.Handle)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := hub.Subscribers(); n != 0 {
		t.Fatalf("subscribers = %d after close, want 0", n)
	}

	// broadcasting after the page left stays a no-op
	hub.Notify("orders", "late feedback")
}
