package ws

import (
	"net/http"

	"lynxhire/internal/domain/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Authenticator resolves an access token to its caller.
type Authenticator interface {
	Authenticate(token string) (profile.Caller, string, error)
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger logrus.FieldLogger
}

func NewHandler(hub *Hub, auth Authenticator, logger logrus.FieldLogger) *Handler {
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.HandleNotificationsWS)
}

// HandleNotificationsWS authenticates with the token query parameter since
// browsers cannot set headers on websocket upgrades.
func (h *Handler) HandleNotificationsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	caller, _, err := h.auth.Authenticate(c.Query("token"))
	if err != nil || !caller.Authenticated() {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.WithError(err).Warn("ws upgrade failed")
			}
			return
		}

		client := NewClient(h.hub, conn, caller.ID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
