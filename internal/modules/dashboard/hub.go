package dashboard

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"studiodesk/internal/domain"
	"studiodesk/internal/modules/booking"
)

// Event is what goes over the wire to every connected desk terminal.
type Event struct {
	Type     string            `json:"type"`
	Booking  *domain.Booking   `json:"booking"`
	Overtime *booking.Overtime `json:"overtime,omitempty"`
}

// Hub fans booking lifecycle events out to live dashboard connections.
// It satisfies the sink the booking service notifies after each commit.
type Hub struct {
	connections map[int64]*websocket.Conn
	nextID      int64
	mutex       sync.RWMutex
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
		log:         log,
	}
}

func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = conn
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[id]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Broadcast(event Event) {
	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.log.Debug().Err(err).Int64("conn_id", id).Msg("dropping dashboard connection")
			h.Unregister(id)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.Broadcast(Event{Type: "BOOKING_CREATED", Booking: b})
}

func (h *Hub) BookingCheckedIn(b *domain.Booking) {
	h.Broadcast(Event{Type: "BOOKING_CHECKED_IN", Booking: b})
}

func (h *Hub) SessionEnded(b *domain.Booking, ot booking.Overtime) {
	h.Broadcast(Event{Type: "SESSION_ENDED", Booking: b, Overtime: &ot})
}

func (h *Hub) BookingUpdated(b *domain.Booking) {
	h.Broadcast(Event{Type: "BOOKING_UPDATED", Booking: b})
}
