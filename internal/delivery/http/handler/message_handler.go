package handler

import (
	"lynxhire/internal/delivery/http/dto"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/pkg/response"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/messages", auth, h.HandleSend)
	r.Get("/messages/conversations", auth, h.HandleConversations)
	r.Get("/messages/:userId", auth, h.HandleThread)
}

func (h *MessageHandler) HandleSend(c fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	recipient, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Recipient not found", nil, err)
	}

	m, err := h.uc.Send(c.Context(), callerOf(c), recipient, req.Content)
	if err != nil {
		return mapUsecaseError(err, messages{
			usecase.ErrNotFound:     "Recipient not found",
			usecase.ErrInvalidInput: "Message must be between 1 and 5000 characters and addressed to someone else",
		})
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewMessageResponse(m))
}

func (h *MessageHandler) HandleThread(c fiber.Ctx) error {
	other, err := uuidParam(c, "userId", "Conversation not found")
	if err != nil {
		return err
	}

	items, err := h.uc.Thread(c.Context(), callerOf(c), other)
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponses(items))
}

func (h *MessageHandler) HandleConversations(c fiber.Ctx) error {
	items, err := h.uc.Conversations(c.Context(), callerOf(c))
	if err != nil {
		return mapUsecaseError(err, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConversationResponses(items))
}
