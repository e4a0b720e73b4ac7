// Package provider abstracts the LLM vendors behind a single chat capability
// and selects the first reachable one at startup.
package provider

import (
	"context"
	"errors"
)

// Message roles on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one prior conversation turn handed to a provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatProvider is the one capability every vendor adapter implements: send a
// system prompt, trailing history and the current message, get text back.
// Implementations must not retry internally; a failed call surfaces to the
// caller, which falls back for that message only.
type ChatProvider interface {
	Name() string
	Configured() bool
	Chat(ctx context.Context, systemPrompt string, history []ChatMessage, message string) (string, error)
}

// ErrNotConfigured is returned when a provider is invoked without credentials.
var ErrNotConfigured = errors.New("provider credential not configured")

// ErrEmptyResponse is returned when a vendor call succeeds at the transport
// level but yields no usable text.
var ErrEmptyResponse = errors.New("provider returned empty response")
