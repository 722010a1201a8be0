package usecase

import "github.com/google/uuid"

const (
	EventApplicationCreated       = "application_created"
	EventApplicationStatusChanged = "application_status_changed"
	EventMessageReceived          = "message_received"
)

// Notifier pushes a realtime event to every live session of one user.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any)
}

func notify(n Notifier, userID uuid.UUID, event string, payload any) {
	if n == nil || userID == uuid.Nil {
		return
	}
	n.Notify(userID, event, payload)
}
