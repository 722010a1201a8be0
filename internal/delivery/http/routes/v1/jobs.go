package v1

import "github.com/gofiber/fiber/v3"

func RegisterJobs(r fiber.Router, h Handlers, auth, optional fiber.Handler) {
	if h.SavedJobs != nil {
		h.SavedJobs.RegisterRoutes(r, auth)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(r, auth, optional)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r, auth)
	}
}
