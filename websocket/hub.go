package websocket

import (
	"context"
	"sync"

	"github.com/anjiri1684/certificate_validation/services"
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub fans certificate events out to every connected subscriber.
type Hub struct {
	clients   map[Conn]struct{}
	clientsMu sync.RWMutex

	register   chan Conn
	unregister chan Conn
	broadcast  chan services.Event
	done       chan struct{}

	logger *zap.Logger
}

var _ services.EventPublisher = (*Hub)(nil)

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]struct{}),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		broadcast:  make(chan services.Event, 64),
		done:       make(chan struct{}),
		logger:     logger.Named("hub"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.clientsMu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.clientsMu.Unlock()
			return
		case conn := <-h.register:
			h.clientsMu.Lock()
			h.clients[conn] = struct{}{}
			h.clientsMu.Unlock()
			h.logger.Debug("subscriber registered")
		case conn := <-h.unregister:
			h.clientsMu.Lock()
			delete(h.clients, conn)
			h.clientsMu.Unlock()
			h.logger.Debug("subscriber unregistered")
		case event := <-h.broadcast:
			h.send(event)
		}
	}
}

func (h *Hub) send(event services.Event) {
	var failed []Conn

	h.clientsMu.RLock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("dropping subscriber", zap.Error(err))
			failed = append(failed, conn)
		}
	}
	h.clientsMu.RUnlock()

	if len(failed) == 0 {
		return
	}
	h.clientsMu.Lock()
	for _, conn := range failed {
		conn.Close()
		delete(h.clients, conn)
	}
	h.clientsMu.Unlock()
}

// Publish drops the event when the buffer is full.
func (h *Hub) Publish(event services.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event buffer full, dropping event", zap.String("type", event.Type))
	}
}

func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Serve holds a subscriber until it disconnects. Incoming frames are ignored.
func (h *Hub) Serve(conn *websocket.Conn) {
	h.Register(conn)
	defer h.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
