package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const stripeSignatureHeader = "Stripe-Signature"

type BillingHandler struct {
	uc usecase.BillingUsecase
}

func NewBillingHandler(uc usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

func (h *BillingHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/billing/plans", h.HandlePlans)
	r.Post("/billing/webhook", h.HandleWebhook)
	r.Get("/billing/subscription", auth, h.HandleSubscription)
	r.Post("/billing/checkout", auth, h.HandleCheckout)
	r.Post("/billing/portal", auth, h.HandlePortal)
}

// HandleWebhook needs the body exactly as sent; the signature covers the raw bytes.
func (h *BillingHandler) HandleWebhook(c fiber.Ctx) error {
	payload := append([]byte(nil), c.Request().Body()...)

	if err := h.uc.HandleWebhook(c.Context(), payload, c.Get(stripeSignatureHeader)); err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrInvalidSignature: "Invalid signature",
			usecase.ErrInvalidInput:     "Invalid webhook payload",
			usecase.ErrNotConfigured:    "Billing webhooks are not configured",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"received": true})
}

func (h *BillingHandler) HandleCheckout(c fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	url, err := h.uc.InitiateCheckout(c.Context(), callerOf(c), req.Plan)
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrRoleForbidden: "Only employers can subscribe.",
			usecase.ErrInvalidPlan:   "Invalid plan",
			usecase.ErrNotConfigured: "Billing is not configured for this plan",
			usecase.ErrUpstream:      "Payment provider error",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RedirectResponse{URL: url})
}

func (h *BillingHandler) HandlePortal(c fiber.Ctx) error {
	url, err := h.uc.OpenPortal(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrNotFound:      "No billing account found",
			usecase.ErrNotConfigured: "Billing is not configured",
			usecase.ErrUpstream:      "Payment provider error",
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RedirectResponse{URL: url})
}

func (h *BillingHandler) HandleSubscription(c fiber.Ctx) error {
	sub, err := h.uc.GetSubscription(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSubscriptionResponse(sub))
}

func (h *BillingHandler) HandlePlans(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPlanResponses(h.uc.Plans()))
}
