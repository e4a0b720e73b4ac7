package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(cfg))
	app.Post("/api/v1/chat", func(c *fiber.Ctx) error {
		var req map[string]interface{}
		if err := c.BodyParser(&req); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		msg, _ := req["message"].(string)
		return c.JSON(fiber.Map{"echo": msg})
	})
	return app
}

func postChat(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestMiddlewareSanitizesMessage(t *testing.T) {
	app := newTestApp(Config{})

	resp := postChat(t, app, map[string]interface{}{
		"message": "  hello\x00 there  ",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Echo string `json:"echo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Echo != "hello there" {
		t.Errorf("handler saw %q, want the trimmed, null-stripped text", out.Echo)
	}
}

func TestMiddlewareRejectsBlankMessage(t *testing.T) {
	app := newTestApp(Config{})

	for _, msg := range []string{"", "   ", "\x00\x00"} {
		resp := postChat(t, app, map[string]interface{}{"message": msg})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("message %q: status = %d, want 400", msg, resp.StatusCode)
		}
	}
}

func TestMiddlewareRejectsOversizedMessage(t *testing.T) {
	app := newTestApp(Config{MaxMessageLength: 10})

	resp := postChat(t, app, map[string]interface{}{"message": strings.Repeat("a", 11)})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMiddlewareRejectsMarkup(t *testing.T) {
	app := newTestApp(Config{})

	resp := postChat(t, app, map[string]interface{}{"message": "<script>alert(1)</script>"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMiddlewareIgnoresOtherPaths(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(Config{}))
	app.Get("/api/v1/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("status = %d body = %q, want untouched passthrough", resp.StatusCode, body)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b", "ab"},
		{"مرحبا ", "مرحبا"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
