package provider

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/marhaba-ai/backend/pkg/logger"
)

// FallbackLabel is the sentinel attribution used when no provider is
// reachable and replies come from the template responder.
const FallbackLabel = "Fallback System"

const probeTimeout = 10 * time.Second

// probeMessage is the minimal completion used to verify connectivity. The
// one-word reply keeps the probe nearly free.
const probeMessage = "Reply with the single word: ok"

// Selector tries candidates in priority order and pins the first that has a
// credential and answers a probe. The pin lasts for the process lifetime;
// per-message failures do not trigger re-selection.
type Selector struct {
	candidates []ChatProvider

	once   sync.Once
	mu     sync.RWMutex
	active ChatProvider
	label  string
}

// NewSelector keeps the given candidate order as the priority order.
func NewSelector(candidates ...ChatProvider) *Selector {
	return &Selector{candidates: candidates, label: FallbackLabel}
}

// Select probes candidates once and pins the winner. Safe to call from main
// at startup and again lazily from the engine; only the first call probes.
func (s *Selector) Select(ctx context.Context) {
	s.once.Do(func() {
		for _, c := range s.candidates {
			if !c.Configured() {
				logger.Debug("Provider skipped, no credential", zap.String("provider", c.Name()))
				continue
			}

			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			_, err := c.Chat(probeCtx, "", nil, probeMessage)
			cancel()
			if err != nil {
				logger.Warn("Provider probe failed, trying next",
					zap.String("provider", c.Name()),
					zap.Error(err),
				)
				continue
			}

			s.mu.Lock()
			s.active = c
			s.label = c.Name()
			s.mu.Unlock()

			logger.Info("Provider pinned", zap.String("provider", c.Name()))
			return
		}

		logger.Warn("No provider reachable, using fallback responder")
	})
}

// Active returns the pinned provider (nil when none succeeded) and its label,
// selecting lazily on first use.
func (s *Selector) Active(ctx context.Context) (ChatProvider, string) {
	s.Select(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.label
}
