package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and delivers task events to
// the connections belonging to each user. Ownership scoping applies to
// the live feed the same way it does to List: a user only ever receives
// events for their own tasks.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound events targeted at a single user's connections.
	events chan userEvent

	// A map of user IDs to the set of that user's connections.
	byUser map[string]map[*Client]bool
}

type userEvent struct {
	userID  string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		events:     make(chan userEvent, 16),
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[*Client]bool)
			}
			h.byUser[client.UserID][client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}

		case ev := <-h.events:
			for client := range h.byUser[ev.userID] {
				select {
				case client.Send <- ev.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// NotifyUser queues a message for all of the user's connections. Safe
// to call from any goroutine; drops the message if the hub is saturated
// so task mutations never block on slow websocket consumers.
func (h *Hub) NotifyUser(userID string, message []byte) {
	select {
	case h.events <- userEvent{userID: userID, message: message}:
	default:
		log.Warn().Str("user_id", userID).Msg("Event hub saturated, dropping task event")
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	if subs, ok := h.byUser[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
}
