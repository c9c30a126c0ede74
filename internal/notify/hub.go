// Package notify fans orchestrator feedback out to cockpit pages over
// websocket. Delivery is best-effort: with no pages attached, Notify is a
// no-op, which is exactly what a completion callback needs after its owning
// view has closed.
package notify

import (
	"net/http"
	"sync"
	"time"

	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// writeWait bounds how long a broadcast waits on one page. A page that stops
// reading is dropped instead of blocking everyone behind the hub mutex.
const writeWait = time.Second

// envelope is the wire format pushed to pages.
type envelope struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// Hub tracks connected pages and broadcasts feedback to all of them.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *applogger.Logger
}

func NewHub(logger *applogger.Logger) *Hub {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// page origin is enforced upstream by CORS on the API
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Notify broadcasts the payload under topic. Dead connections are dropped on
// write failure; errors never propagate to the caller.
func (h *Hub) Notify(topic string, payload interface{}) {
	msg := envelope{Topic: topic, Payload: payload, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("notify write failed, dropping connection", applogger.Error(err))
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Subscribers returns the number of attached pages.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Handle upgrades the request and keeps the connection registered until the
// page goes away.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("page attached", applogger.Int("subscribers", h.Subscribers()))

	// read loop only to observe close; pages never send anything meaningful
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
