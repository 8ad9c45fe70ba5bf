package deck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/darsplan/internal/llm"
	"github.com/abhisek/darsplan/internal/logger"
	"github.com/abhisek/darsplan/internal/store"
	"github.com/abhisek/darsplan/internal/timing"
)

// Service generates timed lesson decks.
type Service struct {
	provider llm.Provider
	cfg      Config

	events store.EventRepo
	cache  store.KV
	log    *logger.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEventRepo records every generated deck.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// WithCache reuses decks for identical requests for Config.CacheTTL.
func WithCache(kv store.KV) Option {
	return func(s *Service) { s.cache = kv }
}

// WithLogger sets the logger for cache and generation events.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a deck generation service.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cfg:      cfg,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type deckOutput struct {
	Title  string        `json:"title"`
	Slides []slideOutput `json:"slides"`
}

type slideOutput struct {
	Title             string `json:"title"`
	Narration         string `json:"narration"`
	VisualDescription string `json:"visual_description"`
	Activity          string `json:"activity"`
}

// Generate asks the model for a deck and splits the configured class
// period across its slides.
func (s *Service) Generate(ctx context.Context, req Request) (*Deck, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Language == "" {
		req.Language = "ar"
	}
	if n := req.minSlides(); s.cfg.TotalMinutes < n {
		return nil, &timing.BudgetError{TotalMinutes: s.cfg.TotalMinutes, Slides: n}
	}

	key := cacheKey(req, s.cfg.TotalMinutes)
	if d, ok := s.cached(ctx, key); ok {
		s.log.Debug("deck cache hit", "deck_id", d.ID, "topic", req.Topic)
		return d, nil
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "deck"), llm.Request{
		System:      deckSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildDeckUserMessage(req, s.cfg.TotalMinutes)}},
		Schema:      DeckSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("deck generation: %w", err)
	}

	var out deckOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse deck response: %w", err)
	}
	if len(out.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	if req.SlideCount > 0 && len(out.Slides) != req.SlideCount {
		s.log.Warn("model returned a different slide count", "requested", req.SlideCount, "got", len(out.Slides))
	}

	d := &Deck{
		ID:        uuid.NewString(),
		Request:   req,
		Title:     strings.TrimSpace(out.Title),
		Slides:    make([]Slide, len(out.Slides)),
		Model:     resp.Model,
		CreatedAt: s.now().UTC(),
	}
	for i, so := range out.Slides {
		d.Slides[i] = Slide{
			Title:             strings.TrimSpace(so.Title),
			Narration:         strings.TrimSpace(so.Narration),
			VisualDescription: strings.TrimSpace(so.VisualDescription),
			Activity:          so.Activity,
		}
	}

	if err := s.Retime(d, s.cfg.TotalMinutes); err != nil {
		return nil, err
	}

	if err := s.record(ctx, d); err != nil {
		return nil, err
	}
	s.remember(ctx, key, d)

	s.log.Info("deck generated", "deck_id", d.ID, "slides", len(d.Slides), "minutes", d.TotalMinutes, "model", d.Model)
	return d, nil
}

// Retime splits totalMinutes across d's slides again. On error d is left
// unchanged.
func (s *Service) Retime(d *Deck, totalMinutes int) error {
	return Retime(d, totalMinutes)
}

// Retime is Service.Retime without a service, for decks loaded from files.
func Retime(d *Deck, totalMinutes int) error {
	timed, err := timing.New(timing.WithTotalMinutes(totalMinutes)).Allocate(TimingSlides(d.Slides))
	if err != nil {
		return err
	}
	ApplyDurations(d.Slides, timed)
	d.TotalMinutes = totalMinutes
	return nil
}

func (s *Service) record(ctx context.Context, d *Deck) error {
	if s.events == nil {
		return nil
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return s.events.AppendDeckEvent(ctx, store.DeckEventData{
		DeckID:       d.ID,
		Topic:        d.Request.Topic,
		Subject:      d.Request.Subject,
		Grade:        d.Request.Grade,
		Language:     d.Request.Language,
		Title:        d.Title,
		SlideCount:   len(d.Slides),
		TotalMinutes: d.TotalMinutes,
		Model:        d.Model,
		Payload:      string(payload),
	})
}

func (s *Service) cached(ctx context.Context, key string) (*Deck, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("deck cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var d Deck
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.log.Warn("discarding unreadable cached deck", "error", err)
		return nil, false
	}
	return &d, true
}

func (s *Service) remember(ctx context.Context, key string, d *Deck) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cfg.CacheTTL); err != nil {
		s.log.Warn("deck cache write failed", "error", err)
	}
}

// cacheKey hashes the normalized request and the period length.
func cacheKey(req Request, totalMinutes int) string {
	norm := req
	norm.Topic = strings.ToLower(strings.TrimSpace(req.Topic))
	norm.Subject = strings.ToLower(strings.TrimSpace(req.Subject))
	norm.Grade = strings.TrimSpace(req.Grade)
	norm.Language = strings.ToLower(req.Language)

	raw, _ := json.Marshal(struct {
		Request
		Minutes int `json:"minutes"`
	}{norm, totalMinutes})
	sum := sha256.Sum256(raw)
	return "deck:" + hex.EncodeToString(sum[:12])
}

// Load returns a previously generated deck by ID.
func Load(ctx context.Context, repo store.EventRepo, id string) (*Deck, error) {
	rec, err := repo.GetDeckEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", id, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	var d Deck
	if err := json.Unmarshal([]byte(rec.Payload), &d); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", id, err)
	}
	return &d, nil
}

// IsBudgetError reports whether err means the period is too short for
// the deck.
func IsBudgetError(err error) bool {
	return errors.Is(err, timing.ErrInsufficientBudget)
}
