package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/darsplan/internal/logger"
	"github.com/abhisek/darsplan/internal/store"
)

// Deps are the collaborators the middleware chain records into.
// Any of them may be nil.
type Deps struct {
	Events store.EventRepo
	KV     store.KV
	Logger *logger.Logger
}

// NewProvider builds the configured provider and wraps it:
// caller → usage limit → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
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
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if deps.Events != nil {
		p = WithLogging(p, deps.Events, deps.Logger)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.DailyTokenLimit > 0 && deps.KV != nil {
		p = WithUsageLimit(p, NewUsageTracker(deps.KV, cfg.DailyTokenLimit), deps.Logger)
	}
	return p, nil
}

// NewProviderFromEnv is NewProvider with ConfigFromEnv.
func NewProviderFromEnv(ctx context.Context, deps Deps) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, deps)
	return p, cfg, err
}
