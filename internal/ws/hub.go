package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// HUB
// ======================================================
//
// Reparte los eventos del feed de cambios a los navegadores
// conectados al dashboard. Un consumidor lento se desconecta
// antes que frenar al resto.

type Hub struct {
	feed   *realtime.Subscriber
	logger *zap.Logger

	mu      sync.RWMutex
	conns   map[*Conn]bool
	claimed chan *Conn
	dropped chan *Conn
	done    chan struct{}
}

func NewHub(feed *realtime.Subscriber, logger *zap.Logger) *Hub {
	return &Hub{
		feed:    feed,
		logger:  logger,
		conns:   make(map[*Conn]bool),
		claimed: make(chan *Conn),
		dropped: make(chan *Conn),
		done:    make(chan struct{}),
	}
}

// Register entrega la conexión al hub. Devuelve false si el hub
// ya se apagó; un upgrade tardío no debe quedarse bloqueado.
func (h *Hub) Register(c *Conn) bool {
	select {
	case h.claimed <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(c *Conn) {
	select {
	case h.dropped <- c:
	case <-h.done:
	}
}

func (h *Hub) TotalConns() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.claimed:
			h.mu.Lock()
			h.conns[c] = true
			h.mu.Unlock()
			h.logger.Info("ws: client connected", zap.Int("total", h.TotalConns()))

		case c := <-h.dropped:
			h.remove(c)

		case ev, ok := <-h.feed.Events():
			if !ok {
				h.shutdown()
				return
			}
			h.broadcast(ev)
		}
	}
}

func (h *Hub) broadcast(ev realtime.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("ws: failed to encode event", zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- payload:
		default:
			// buffer lleno: consumidor lento, fuera
			h.logger.Warn("ws: dropping slow client")
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[c] {
		delete(h.conns, c)
		close(c.send)
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		close(c.send)
		delete(h.conns, c)
	}
}
