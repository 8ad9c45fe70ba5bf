package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/darsplan/internal/logger"
	"github.com/abhisek/darsplan/internal/store"
)

// ErrUsageLimit is returned once the daily token budget is spent.
var ErrUsageLimit = errors.New("daily LLM token limit reached")

// usageKeyTTL keeps a day's counter around long enough to be read on the
// following day for reporting.
const usageKeyTTL = 48 * time.Hour

// UsageTracker keeps a per-day token count in a KV store.
type UsageTracker struct {
	kv    store.KV
	limit int
	now   func() time.Time

	mu sync.Mutex
}

// NewUsageTracker creates a tracker that allows dailyLimit tokens per day.
func NewUsageTracker(kv store.KV, dailyLimit int) *UsageTracker {
	return &UsageTracker{kv: kv, limit: dailyLimit, now: time.Now}
}

func usageKey(day time.Time) string {
	return "llm:usage:" + day.Format("2006-01-02")
}

// Used returns the tokens recorded for today.
func (u *UsageTracker) Used(ctx context.Context) (int, error) {
	raw, ok, err := u.kv.Get(ctx, usageKey(u.now()))
	if err != nil {
		return 0, fmt.Errorf("read token usage: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt token usage %q: %w", raw, err)
	}
	return n, nil
}

// Remaining returns the tokens left today. It never goes below zero.
func (u *UsageTracker) Remaining(ctx context.Context) (int, error) {
	used, err := u.Used(ctx)
	if err != nil {
		return 0, err
	}
	return max(0, u.limit-used), nil
}

// Check fails with ErrUsageLimit when today's budget is spent.
func (u *UsageTracker) Check(ctx context.Context) error {
	remaining, err := u.Remaining(ctx)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return fmt.Errorf("%w (%d tokens)", ErrUsageLimit, u.limit)
	}
	return nil
}

// Record adds tokens to today's count.
func (u *UsageTracker) Record(ctx context.Context, tokens int) error {
	if tokens <= 0 {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	used, err := u.Used(ctx)
	if err != nil {
		return err
	}
	key := usageKey(u.now())
	if err := u.kv.Set(ctx, key, strconv.Itoa(used+tokens), usageKeyTTL); err != nil {
		return fmt.Errorf("write token usage: %w", err)
	}
	return nil
}

// UsageLimitProvider refuses calls once the tracker's budget is spent and
// records the tokens of every successful call.
type UsageLimitProvider struct {
	inner   Provider
	tracker *UsageTracker
	log     *logger.Logger
}

// WithUsageLimit wraps a Provider with a daily token budget.
func WithUsageLimit(p Provider, tracker *UsageTracker, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &UsageLimitProvider{inner: p, tracker: tracker, log: log}
}

func (u *UsageLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := u.tracker.Check(ctx); err != nil {
		return nil, err
	}

	resp, err := u.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	tokens := resp.Usage.TotalTokens
	if tokens == 0 {
		tokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	// The call already succeeded, so a failed write only under-counts.
	if err := u.tracker.Record(context.WithoutCancel(ctx), tokens); err != nil {
		u.log.Warn("failed to record token usage", "tokens", tokens, "error", err)
	}
	return resp, nil
}

func (u *UsageLimitProvider) ModelID() string {
	return u.inner.ModelID()
}
