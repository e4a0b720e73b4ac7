package validation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var xssPattern = regexp.MustCompile(`(?i)(<script|<iframe|javascript:|onerror=|onload=|onclick=)`)

type Config struct {
	MaxMessageLength int
	Logger           *zap.Logger
}

// Middleware validates chat payloads before they reach the engine: a present,
// bounded, markup-free message. Customer text is otherwise passed through
// untouched; Arabic needs no sanitizing beyond the null-byte strip.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxMessageLength == 0 {
		cfg.MaxMessageLength = 2000
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost || !strings.Contains(c.Path(), "/api/v1/chat") {
			return c.Next()
		}

		var req map[string]interface{}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON format",
			})
		}

		raw, ok := req["message"].(string)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required and must be a string",
			})
		}

		message := Sanitize(raw)
		if message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required and must be a string",
			})
		}

		if len(message) > cfg.MaxMessageLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message exceeds maximum length",
			})
		}

		if xssPattern.MatchString(message) {
			cfg.Logger.Warn("Potential XSS attempt",
				zap.String("ip", c.IP()),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid message content",
			})
		}

		if message != raw {
			req["message"] = message
			if body, err := json.Marshal(req); err == nil {
				c.Request().SetBody(body)
			}
		}

		return c.Next()
	}
}

// Sanitize trims and strips null bytes from customer text.
func Sanitize(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
