package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt. Base providers and
// the retry, logging and usage-limit decorators all implement it.
type Provider interface {
	// Generate sends req. When req.Schema is set the returned content has
	// been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System string

	// Deck generation sends a single user message.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode. Without it Content is the model's raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0.0-1.0. Zero keeps the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must satisfy.
type Schema struct {
	// Name is sent to providers that label schemas and keys the compiled
	// schema cache, so it must be unique per definition ("lesson-deck").
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the call, which can differ
	// from the configured alias.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
