package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marhaba-ai/backend/internal/engine"
)

type ConversationHandler struct {
	engine *engine.Engine
}

func NewConversationHandler(eng *engine.Engine) *ConversationHandler {
	return &ConversationHandler{engine: eng}
}

// ClearConversation drops the in-memory context for one conversation id.
// Unknown ids succeed; a fresh context is indistinguishable from a cleared
// one.
func (h *ConversationHandler) ClearConversation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Conversation id is required",
		})
	}

	h.engine.ClearConversation(id)

	return c.JSON(fiber.Map{
		"success":         true,
		"conversation_id": id,
	})
}

// GetHistory returns the stored transcript.
func (h *ConversationHandler) GetHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Conversation id is required",
		})
	}

	history := h.engine.History(id)

	return c.JSON(fiber.Map{
		"conversation_id": id,
		"turns":           history,
		"count":           len(history),
	})
}

// GetSummary reports message count, detected intents and the coarse outcome.
func (h *ConversationHandler) GetSummary(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Conversation id is required",
		})
	}

	return c.JSON(fiber.Map{
		"conversation_id": id,
		"summary":         h.engine.Summarize(id),
	})
}
