package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is a row-change notification pushed to connected clients so they
// re-fetch the affected view instead of patching state locally.
type Event struct {
	Type   string `json:"type"`   // product_changed, price_history_changed, users_changed
	Action string `json:"action"` // created, updated, deleted, restored
	Key    string `json:"key"`    // product code, "code/date", or user id
	Actor  string `json:"actor"`  // display name of who triggered it
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Publish marshals and broadcasts an event. Safe on a nil hub so services
// can run without a live websocket layer (e.g. in tests).
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	go func() {
		msg, err := json.Marshal(e)
		if err != nil {
			return
		}
		h.Broadcast <- msg
	}()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Println("WS write error:", err)
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
