package v1

import (
	"lynxhire/internal/delivery/http/handler"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	AuthMW *middleware.AuthMiddleware

	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationHandler
	SavedJobs    *handler.SavedJobHandler
	Billing      *handler.BillingHandler
	Messages     *handler.MessageHandler
	Dashboard    *handler.DashboardHandler
	Realtime     *ws.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.AuthMW == nil {
		return
	}

	auth := h.AuthMW.Middleware()
	optional := h.AuthMW.Optional()

	RegisterUsers(r, h, auth)
	RegisterJobs(r, h, auth, optional)
	RegisterBilling(r, h, auth)

	if h.Realtime != nil {
		h.Realtime.RegisterRoutes(r)
	}
}
