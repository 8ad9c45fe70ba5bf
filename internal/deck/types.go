package deck

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/darsplan/internal/timing"
)

const (
	MinSlides = 3
	MaxSlides = 30
)

var (
	// ErrEmptyDeck is returned when the model produced no slides.
	ErrEmptyDeck = errors.New("deck has no slides")

	// ErrDeckNotFound is returned by Load for an unknown deck ID.
	ErrDeckNotFound = errors.New("deck not found")
)

// Request describes the lesson to plan.
type Request struct {
	Topic      string   `json:"topic" yaml:"topic"`
	Subject    string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Grade      string   `json:"grade,omitempty" yaml:"grade,omitempty"`
	Language   string   `json:"language,omitempty" yaml:"language,omitempty"`
	SlideCount int      `json:"slide_count,omitempty" yaml:"slide_count,omitempty"`
	Objectives []string `json:"objectives,omitempty" yaml:"objectives,omitempty"`
}

// Validate checks the request. A SlideCount of zero lets the model choose.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	if r.SlideCount != 0 && (r.SlideCount < MinSlides || r.SlideCount > MaxSlides) {
		return fmt.Errorf("slide count must be between %d and %d, got %d", MinSlides, MaxSlides, r.SlideCount)
	}
	return nil
}

// minSlides is the fewest slides a response to r can contain.
func (r Request) minSlides() int {
	if r.SlideCount > 0 {
		return r.SlideCount
	}
	return MinSlides
}

// Slide is one generated slide with its allotted minutes.
type Slide struct {
	Title             string `json:"title" yaml:"title"`
	Narration         string `json:"narration" yaml:"narration"`
	VisualDescription string `json:"visual_description,omitempty" yaml:"visual_description,omitempty"`
	Activity          string `json:"activity,omitempty" yaml:"activity,omitempty"`
	Duration          int    `json:"duration_minutes" yaml:"duration_minutes"`
}

// Deck is a generated, timed lesson.
type Deck struct {
	ID           string    `json:"id" yaml:"id"`
	Request      Request   `json:"request" yaml:"request"`
	Title        string    `json:"title" yaml:"title"`
	Slides       []Slide   `json:"slides" yaml:"slides"`
	TotalMinutes int       `json:"total_minutes" yaml:"total_minutes"`
	Model        string    `json:"model,omitempty" yaml:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// StartMinute returns the minute offset at which slide i begins.
func (d *Deck) StartMinute(i int) int {
	start := 0
	for _, s := range d.Slides[:i] {
		start += s.Duration
	}
	return start
}

// TimingSlides converts slides to the allocator's input type.
func TimingSlides(slides []Slide) []timing.Slide {
	out := make([]timing.Slide, len(slides))
	for i, s := range slides {
		out[i] = timing.Slide{
			Title:             s.Title,
			Narration:         s.Narration,
			VisualDescription: s.VisualDescription,
			Duration:          s.Duration,
		}
	}
	return out
}

// ApplyDurations copies allocated durations back onto slides. Both slices
// must be the same length.
func ApplyDurations(slides []Slide, timed []timing.Slide) {
	for i := range slides {
		slides[i].Duration = timed[i].Duration
	}
}
