package ai

import (
	"context"
	"errors"
	"fmt"

	"lynxhire/internal/config"
	"lynxhire/internal/scoring"
)

var ErrEmptyResponse = errors.New("language model returned empty response")

// New returns the generator selected by cfg.Provider, or nil when no provider
// is configured.
func New(ctx context.Context, cfg config.AIConfig) (scoring.TextGenerator, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "anthropic":
		gen, err := NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "gemini":
		gen, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
