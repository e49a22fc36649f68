package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewTaskMessage encodes a task event for delivery to the owner's
// connections.
func NewTaskMessage(action string, payload interface{}) []byte {
	data, _ := json.Marshal(Message{Action: action, Payload: payload})
	return data
}
