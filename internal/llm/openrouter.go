package llm

import (
	"errors"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the OpenAI provider pointed at OpenRouter's
// compatible endpoint. Model IDs are passed through untouched.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API
// with darsplan attribution headers.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	// OpenRouter attributes traffic by these two headers.
	headers := http.Header{}
	headers.Set("HTTP-Referer", "https://github.com/abhisek/darsplan")
	headers.Set("X-Title", "darsplan")

	return &OpenRouterProvider{OpenAIProvider: newOpenAIProvider(cfg.APIKey, baseURL, cfg.Model, headers)}, nil
}
