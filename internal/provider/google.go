package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// Google calls the Gemini generateContent API over HTTP.
type Google struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
}

func NewGoogle(apiKey, model string, maxTokens int, temperature float32) *Google {
	return &Google{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (p *Google) Name() string { return "Google" }

func (p *Google) Configured() bool { return p.apiKey != "" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float32 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Google) Chat(ctx context.Context, systemPrompt string, history []ChatMessage, message string) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	var reqBody geminiRequest
	if systemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}
	for _, m := range history {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		reqBody.Contents = append(reqBody.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})
	reqBody.GenerationConfig.Temperature = p.temperature
	reqBody.GenerationConfig.MaxOutputTokens = p.maxTokens

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf(geminiURLFormat, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("gemini error: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
