package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/marhaba-ai/backend/internal/engine"
	"github.com/marhaba-ai/backend/pkg/logger"
)

type ChatHandler struct {
	engine *engine.Engine
}

func NewChatHandler(eng *engine.Engine) *ChatHandler {
	return &ChatHandler{engine: eng}
}

type chatRequest struct {
	ConversationID string                 `json:"conversation_id"`
	Message        string                 `json:"message"`
	Business       engine.BusinessProfile `json:"business"`
}

// HandleChat processes one customer message. The business profile snapshot
// travels inline; persistence of tenant records belongs to the CRUD layer.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse chat request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}
	if req.ConversationID == "" {
		req.ConversationID = "default"
	}

	result := h.engine.ProcessMessage(c.Context(), engine.Request{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Business:       req.Business,
	})

	return c.JSON(result)
}
