package llm

import (
	"context"
	"fmt"

	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/store"
)

// EventRecorder persists one row per backend call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// NewProvider creates a Provider from configuration, wrapped with logging
// and, when cfg.Retry.MaxAttempts > 1, retry middleware.
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		mock := NewMockProvider()
		mock.Fallback = sampleLesson
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	p := WithLogging(base, cfg.Provider, events, log)
	return WithRetry(p, cfg.Retry), nil
}
