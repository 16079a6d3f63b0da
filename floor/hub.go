package floor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
)

// Event types
const (
	EventReservationCreated   = "reservation_created"
	EventReservationUpdated   = "reservation_updated"
	EventReservationCancelled = "reservation_cancelled"
	EventTableUpdate          = "table_update"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// TableStatus is the payload of a table_update event.
type TableStatus struct {
	TableID   uint `json:"table_id"`
	Available bool `json:"available"`
}

// Hub keeps the connected floor displays (host stand, staff tablets) and
// pushes reservation activity to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Clients returns the number of connected displays.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) ReservationCreated(res models.Reservation) {
	h.Broadcast(Message{Event: EventReservationCreated, Data: res})
}

func (h *Hub) ReservationUpdated(res models.Reservation) {
	h.Broadcast(Message{Event: EventReservationUpdated, Data: res})
}

func (h *Hub) ReservationCancelled(res models.Reservation) {
	h.Broadcast(Message{Event: EventReservationCancelled, Data: res})
}

func (h *Hub) TableAvailabilityChanged(tableID uint, available bool) {
	h.Broadcast(Message{Event: EventTableUpdate, Data: TableStatus{TableID: tableID, Available: available}})
}

// Broadcast sends msg to every client. Clients that fail a write are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Error("marshal floor message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.InfoLogger.WithError(err).WithField("role", role).Warn("dropping floor client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
