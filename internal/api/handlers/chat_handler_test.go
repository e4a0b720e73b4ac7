package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/marhaba-ai/backend/internal/conversation"
	"github.com/marhaba-ai/backend/internal/engine"
	"github.com/marhaba-ai/backend/internal/provider"
)

func newTestApp(t *testing.T) (*fiber.App, *conversation.Store) {
	t.Helper()

	store := conversation.NewStore(0)
	eng := engine.NewEngine(provider.NewSelector(), store)

	app := fiber.New()
	chat := NewChatHandler(eng)
	conv := NewConversationHandler(eng)

	app.Post("/api/v1/chat", chat.HandleChat)
	app.Post("/api/v1/conversations/:id/clear", conv.ClearConversation)
	app.Get("/api/v1/conversations/:id/history", conv.GetHistory)
	app.Get("/api/v1/conversations/:id/summary", conv.GetSummary)

	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestChatEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	defer store.Stop()

	resp := postJSON(t, app, "/api/v1/chat", map[string]interface{}{
		"conversation_id": "c1",
		"message":         "I want to book an appointment",
		"business": map[string]string{
			"name": "Glow Salon",
		},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result engine.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Response == "" {
		t.Error("response text is empty")
	}
	if result.Intent != "booking" {
		t.Errorf("intent = %q, want booking", result.Intent)
	}
	if result.PoweredBy != provider.FallbackLabel {
		t.Errorf("powered_by = %q, want %q", result.PoweredBy, provider.FallbackLabel)
	}
	if result.ID == "" {
		t.Error("message id is empty")
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	app, store := newTestApp(t)
	defer store.Stop()

	resp := postJSON(t, app, "/api/v1/chat", map[string]interface{}{
		"conversation_id": "c1",
		"message":         "",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChatEndpointInvalidBody(t *testing.T) {
	app, store := newTestApp(t)
	defer store.Stop()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestConversationLifecycleEndpoints(t *testing.T) {
	app, store := newTestApp(t)
	defer store.Stop()

	resp := postJSON(t, app, "/api/v1/chat", map[string]interface{}{
		"conversation_id": "c1",
		"message":         "how much is a haircut",
		"business":        map[string]string{"name": "Glow Salon"},
	})
	resp.Body.Close()

	histReq := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/c1/history", nil)
	histResp, err := app.Test(histReq, -1)
	if err != nil {
		t.Fatalf("history request: %v", err)
	}
	defer histResp.Body.Close()

	var hist struct {
		Count int                 `json:"count"`
		Turns []conversation.Turn `json:"turns"`
	}
	if err := json.NewDecoder(histResp.Body).Decode(&hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if hist.Count != 2 {
		t.Errorf("history count = %d, want 2", hist.Count)
	}

	sumReq := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/c1/summary", nil)
	sumResp, err := app.Test(sumReq, -1)
	if err != nil {
		t.Fatalf("summary request: %v", err)
	}
	defer sumResp.Body.Close()

	var sum struct {
		Summary engine.Summary `json:"summary"`
	}
	if err := json.NewDecoder(sumResp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Summary.Outcome != "pricing_provided" {
		t.Errorf("outcome = %q, want pricing_provided", sum.Summary.Outcome)
	}

	clearResp := postJSON(t, app, "/api/v1/conversations/c1/clear", nil)
	defer clearResp.Body.Close()
	if clearResp.StatusCode != http.StatusOK {
		t.Errorf("clear status = %d, want 200", clearResp.StatusCode)
	}

	afterReq := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/c1/history", nil)
	afterResp, err := app.Test(afterReq, -1)
	if err != nil {
		t.Fatalf("history after clear: %v", err)
	}
	defer afterResp.Body.Close()

	body, _ := io.ReadAll(afterResp.Body)
	var after struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &after); err != nil {
		t.Fatalf("decode history after clear: %v", err)
	}
	if after.Count != 0 {
		t.Errorf("history count after clear = %d, want 0", after.Count)
	}
}
