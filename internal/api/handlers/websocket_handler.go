package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/marhaba-ai/backend/internal/engine"
	"github.com/marhaba-ai/backend/pkg/logger"
)

// WebSocketHandler serves the live chat console: each inbound frame runs the
// engine once, the reply streams back word by word, then a completion frame
// carries the intent, confidence and attribution.
type WebSocketHandler struct {
	engine *engine.Engine
}

func NewWebSocketHandler(eng *engine.Engine) *WebSocketHandler {
	return &WebSocketHandler{engine: eng}
}

type wsMessage struct {
	Type           string                 `json:"type"`
	ConversationID string                 `json:"conversation_id"`
	Message        string                 `json:"message"`
	Business       engine.BusinessProfile `json:"business"`
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg wsMessage
		if err := c.ReadJSON(&msg); err != nil {
			logger.Error("Failed to read WebSocket message", zap.Error(err))
			break
		}

		if msg.Type != "chat" || msg.Message == "" {
			continue
		}
		if msg.ConversationID == "" {
			msg.ConversationID = "default"
		}

		if err := h.streamResponse(c, msg); err != nil {
			logger.Error("Failed to stream response", zap.Error(err))
			h.sendError(c, "Failed to process message")
		}
	}
}

func (h *WebSocketHandler) streamResponse(c *websocket.Conn, msg wsMessage) error {
	result := h.engine.ProcessMessage(context.Background(), engine.Request{
		ConversationID: msg.ConversationID,
		Message:        msg.Message,
		Business:       msg.Business,
	})

	words := strings.Fields(result.Response)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := h.sendChunk(c, chunk); err != nil {
			return err
		}
	}

	return c.WriteJSON(map[string]interface{}{
		"type":       "complete",
		"message_id": result.ID,
		"intent":     result.Intent,
		"confidence": result.Confidence,
		"powered_by": result.PoweredBy,
		"latency_ms": result.LatencyMS,
	})
}

func (h *WebSocketHandler) sendChunk(c *websocket.Conn, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    "chunk",
		"content": content,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	c.WriteJSON(map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	})
}
