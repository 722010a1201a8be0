package v1

import "github.com/gofiber/fiber/v3"

func RegisterUsers(r fiber.Router, h Handlers, auth fiber.Handler) {
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r, auth)
	}
	if h.Messages != nil {
		h.Messages.RegisterRoutes(r, auth)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r, auth)
	}
}
