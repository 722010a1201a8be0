package v1

import "github.com/gofiber/fiber/v3"

func RegisterBilling(r fiber.Router, h Handlers, auth fiber.Handler) {
	if h.Billing == nil {
		return
	}
	h.Billing.RegisterRoutes(r, auth)
}
