package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Purpose string // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// DeckEventData records one generated and timed lesson deck. Payload is the
// full deck serialized as JSON.
type DeckEventData struct {
	DeckID       string
	Topic        string
	Subject      string
	Grade        string
	Language     string
	Title        string
	SlideCount   int
	TotalMinutes int
	Model        string
	Payload      string
}

// DeckEventRecord is a stored deck event.
type DeckEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	DeckEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendDeckEvent records a generated deck.
	AppendDeckEvent(ctx context.Context, data DeckEventData) error

	// QueryDeckEvents returns deck events, newest first.
	QueryDeckEvents(ctx context.Context, opts QueryOpts) ([]DeckEventRecord, error)

	// GetDeckEvent returns the event for a deck ID, or nil if it does not exist.
	GetDeckEvent(ctx context.Context, deckID string) (*DeckEventRecord, error)
}

// KV is a small string key-value store. It backs usage counters and the
// deck cache.
type KV interface {
	// Get returns the value for key. The bool is false when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. A ttl of zero never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
