// Package engine orchestrates one customer message into one reply: intent
// classification, prompt assembly, the provider call, and the template
// fallback when no provider is reachable or the call fails.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marhaba-ai/backend/internal/conversation"
	"github.com/marhaba-ai/backend/internal/intent"
	"github.com/marhaba-ai/backend/internal/metrics"
	"github.com/marhaba-ai/backend/internal/provider"
	"github.com/marhaba-ai/backend/internal/timectx"
	"github.com/marhaba-ai/backend/pkg/logger"
)

const defaultBusinessName = "Business"

// Response paths reported in metrics and attribution.
const (
	pathAI       = "ai"
	pathFallback = "fallback"
	pathError    = "fallback_error"
	pathOffTopic = "off_topic"
)

// BusinessProfile is the tenant snapshot handed in by the CRUD layer. Only
// name is guaranteed non-empty upstream; the engine tolerates anything.
type BusinessProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Hours       string `json:"hours"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Request is one inbound customer message.
type Request struct {
	ConversationID string
	Message        string
	Business       BusinessProfile
}

// Result is the structured engine output consumed by the HTTP and websocket
// layers. Error is diagnostic only; the customer always gets Response text.
type Result struct {
	ID         string  `json:"id"`
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	PoweredBy  string  `json:"powered_by"`
	LatencyMS  int     `json:"latency_ms"`
	Error      string  `json:"error,omitempty"`
}

// Summary is the coarse conversation outcome view.
type Summary struct {
	MessageCount int      `json:"message_count"`
	Intents      []string `json:"intents_detected"`
	Outcome      string   `json:"outcome"`
}

// Engine holds all mutable state explicitly so the composing application owns
// it; there are no package-level globals to reset between tests.
type Engine struct {
	selector      *provider.Selector
	store         *conversation.Store
	now           func() time.Time
	loc           *time.Location
	historyWindow int
	callTimeout   time.Duration
}

type Option func(*Engine)

// WithClock overrides the engine clock, for deterministic time context in
// tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTimezone sets the business locale timezone.
func WithTimezone(name string) Option {
	return func(e *Engine) { e.loc = timectx.Location(name) }
}

// WithHistoryWindow sets how many trailing turns feed the prompt.
func WithHistoryWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.historyWindow = n
		}
	}
}

// WithCallTimeout bounds a single provider call, separate from whatever the
// vendor SDK enforces. Telephony callers rely on this staying small.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.callTimeout = d
		}
	}
}

func NewEngine(selector *provider.Selector, store *conversation.Store, opts ...Option) *Engine {
	e := &Engine{
		selector:      selector,
		store:         store,
		now:           time.Now,
		loc:           timectx.Location(timectx.DefaultTimezone),
		historyWindow: 5,
		callTimeout:   20 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessMessage runs the full pipeline for one message. It never returns an
// error to the caller: every failure degrades to the template responder, and
// the cause travels in Result.Error for diagnostics only.
func (e *Engine) ProcessMessage(ctx context.Context, req Request) *Result {
	start := time.Now()

	profile := req.Business
	if profile.Name == "" {
		profile.Name = defaultBusinessName
	}

	cls := intent.Classify(req.Message)
	lang := intent.DetectLanguage(req.Message)
	tc := timectx.Compute(e.now().In(e.loc))

	e.store.Append(req.ConversationID, conversation.RoleUser, req.Message)
	e.store.RecordIntent(req.ConversationID, cls.Intent)

	result := &Result{
		ID:         uuid.New().String(),
		Intent:     cls.Intent,
		Confidence: cls.Confidence,
	}

	active, label := e.selector.Active(ctx)
	path := pathFallback

	switch {
	case active == nil:
		result.Response = FallbackResponse(req.Message, profile, cls.Intent, tc)
		result.PoweredBy = provider.FallbackLabel
		metrics.FallbackTotal.WithLabelValues("no_provider").Inc()

	case !intent.OnTopic(req.Message):
		// Guarded in front of the provider call so clearly irrelevant
		// chatter never costs an API call.
		result.Response = offTopicReply(lang)
		result.Intent = intent.IntentOffTopic
		result.Confidence = 0.9
		result.PoweredBy = provider.FallbackLabel
		path = pathOffTopic

	default:
		response, err := e.invokeProvider(ctx, active, label, profile, tc, req)
		if err != nil {
			logger.Error("Provider call failed, falling back",
				zap.String("provider", label),
				zap.String("conversation_id", req.ConversationID),
				zap.Error(err),
			)
			result.Response = FallbackResponse(req.Message, profile, cls.Intent, tc)
			result.PoweredBy = provider.FallbackLabel
			result.Error = err.Error()
			path = pathError
			metrics.FallbackTotal.WithLabelValues("provider_error").Inc()
		} else {
			result.Response = response
			result.PoweredBy = label
			path = pathAI
		}
	}

	e.store.Append(req.ConversationID, conversation.RoleAssistant, result.Response)

	result.LatencyMS = int(time.Since(start).Milliseconds())
	metrics.MessagesTotal.WithLabelValues(result.Intent, path).Inc()
	metrics.ActiveConversations.Set(float64(e.store.Count()))

	logger.Info("Message processed",
		zap.String("conversation_id", req.ConversationID),
		zap.String("intent", result.Intent),
		zap.String("path", path),
		zap.String("powered_by", result.PoweredBy),
		zap.Int("latency_ms", result.LatencyMS),
	)

	return result
}

// invokeProvider sends the system prompt, the trailing history window and the
// current message to the pinned provider. No retries: one shot, then the
// caller falls back for this message only.
func (e *Engine) invokeProvider(ctx context.Context, active provider.ChatProvider, label string, profile BusinessProfile, tc timectx.Context, req Request) (string, error) {
	systemPrompt := buildSystemPrompt(profile, tc)

	// The current message was already appended, so the window includes it as
	// the final turn; everything before it is history. A concurrent Clear can
	// leave the window empty, in which case the message goes out alone.
	turns := e.store.Recent(req.ConversationID, e.historyWindow)
	history := make([]provider.ChatMessage, 0, len(turns))
	if len(turns) > 0 {
		for _, t := range turns[:len(turns)-1] {
			history = append(history, provider.ChatMessage{Role: t.Role, Content: t.Content})
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	start := time.Now()
	response, err := active.Chat(callCtx, systemPrompt, history, req.Message)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ProviderLatency.WithLabelValues(label, status).Observe(time.Since(start).Seconds())

	return response, err
}

// ClearConversation drops one conversation context.
func (e *Engine) ClearConversation(id string) {
	e.store.Clear(id)
	metrics.ActiveConversations.Set(float64(e.store.Count()))
}

// History returns the stored transcript for a conversation.
func (e *Engine) History(id string) []conversation.Turn {
	return e.store.History(id)
}

// Summarize reports message count, detected intents and a coarse outcome for
// one conversation.
func (e *Engine) Summarize(id string) Summary {
	intents := e.store.Intents(id)
	return Summary{
		MessageCount: len(e.store.History(id)),
		Intents:      intents,
		Outcome:      outcomeOf(intents),
	}
}

func outcomeOf(intents []string) string {
	has := func(tag string) bool {
		for _, i := range intents {
			if i == tag {
				return true
			}
		}
		return false
	}
	switch {
	case has(intent.IntentBooking):
		return "appointment_requested"
	case has(intent.IntentPricing):
		return "pricing_provided"
	case has(intent.IntentServices):
		return "service_info_provided"
	default:
		return "general_inquiry"
	}
}
