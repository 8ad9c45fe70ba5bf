package deck

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/darsplan/internal/timing"
)

// Config holds deck generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// TotalMinutes is the class period split across the slides.
	TotalMinutes int

	// CacheTTL is how long a generated deck is reused for an identical
	// request. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns the defaults for deck generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    4096,
		Temperature:  0.6,
		TotalMinutes: timing.DefaultTotalMinutes,
		CacheTTL:     24 * time.Hour,
	}
}

// ConfigFromEnv overlays DARS_TOTAL_MINUTES, DARS_DECK_MAX_TOKENS and
// DARS_DECK_CACHE_TTL on the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if raw := os.Getenv("DARS_TOTAL_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid DARS_TOTAL_MINUTES %q", raw)
		}
		cfg.TotalMinutes = n
	}
	if raw := os.Getenv("DARS_DECK_MAX_TOKENS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid DARS_DECK_MAX_TOKENS %q", raw)
		}
		cfg.MaxTokens = n
	}
	if raw := os.Getenv("DARS_DECK_CACHE_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid DARS_DECK_CACHE_TTL %q: %w", raw, err)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}
