package websocket

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

// Change is one row-change notification pushed to every connected client.
// It replaces the hosted database's realtime subscription: clients re-read
// the touched collection when one arrives. Ref identifies the changed row
// or, for cascades, the owning event; it is the same shape for every action.
type Change struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	Ref        string `json:"ref"`
}

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Change
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Change),
	}
}

// NotifyChange satisfies the coordinator's Notifier. It must only be called
// once Run is going.
func (h *Hub) NotifyChange(collection, action, ref string) {
	h.Broadcast <- Change{Collection: collection, Action: action, Ref: ref}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Printf("WebSocket client registered for user %s", client.UserID)

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Printf("WebSocket client unregistered for user %s", client.UserID)
			}

		case change := <-h.Broadcast:
			jsonData, err := json.Marshal(change)
			if err != nil {
				log.Println("Failed to marshal change notification:", err)
				continue
			}

			for client := range h.Clients {
				select {
				case client.Send <- jsonData:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
