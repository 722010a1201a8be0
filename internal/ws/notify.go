package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// Notify implements the usecase notifier on top of the hub.
func (h *Hub) Notify(userID uuid.UUID, event string, payload any) {
	if h == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).WithField("event", event).Warn("ws event encode failed")
		}
		return
	}

	h.Send(userID, b)
}
