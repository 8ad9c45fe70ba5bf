package timing

import (
	"math"
	"sort"
)

// maxBalanceSteps is the base iteration bound for the correction loop. The
// loop may also take one full pass over the content slides per minute of
// difference, which is what the floor of one minute can require.
const maxBalanceSteps = 100

// Allocator splits a fixed class period across a lesson's slides.
// It is immutable after construction and safe for concurrent use.
type Allocator struct {
	totalMinutes int
	rules        []Rule
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithTotalMinutes sets the budget to distribute.
func WithTotalMinutes(minutes int) Option {
	return func(a *Allocator) {
		a.totalMinutes = minutes
	}
}

// withRules replaces the activity keyword table. The bonuses are fixed
// lesson policy, so only tests swap them.
func withRules(rules []Rule) Option {
	return func(a *Allocator) {
		a.rules = append([]Rule(nil), rules...)
	}
}

// New creates an Allocator with a 40 minute budget and the default rules.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		totalMinutes: DefaultTotalMinutes,
		rules:        DefaultRules(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TotalMinutes returns the configured budget.
func (a *Allocator) TotalMinutes() int {
	return a.totalMinutes
}

// Allocate is shorthand for New(WithTotalMinutes(totalMinutes)).Allocate(slides).
func Allocate(slides []Slide, totalMinutes int) ([]Slide, error) {
	return New(WithTotalMinutes(totalMinutes)).Allocate(slides)
}

// Allocate returns a copy of slides with Duration set on every element so
// that the durations sum to the configured total. Incoming Duration values
// are ignored.
//
// The first slide gets TitleMinutes and, with two or more slides, the last
// gets ClosureMinutes. A two-slide lesson gives the remainder to the last
// slide and a single slide takes the whole budget. When the budget equals
// the slide count the closure slot drops to one minute.
func (a *Allocator) Allocate(slides []Slide) ([]Slide, error) {
	n := len(slides)
	if n == 0 {
		return nil, ErrNoSlides
	}
	total := a.totalMinutes
	if total < n {
		return nil, &BudgetError{TotalMinutes: total, Slides: n}
	}

	out := make([]Slide, n)
	copy(out, slides)
	for i := range out {
		out[i].Duration = 0
	}

	switch n {
	case 1:
		out[0].Duration = total
		return out, nil
	case 2:
		out[0].Duration = TitleMinutes
		out[1].Duration = total - TitleMinutes
		return out, nil
	}

	contentCount := n - 2
	closure := ClosureMinutes
	if total-TitleMinutes-closure < contentCount {
		closure = 1
	}
	out[0].Duration = TitleMinutes
	out[n-1].Duration = closure
	remaining := total - TitleMinutes - closure

	weights := make([]float64, contentCount)
	var totalWeight float64
	for i := range weights {
		weights[i] = a.Weight(out[i+1])
		totalWeight += weights[i]
	}

	for i, w := range weights {
		share := int(math.Round(w / totalWeight * float64(remaining)))
		out[i+1].Duration = max(1, share)
	}

	if err := balance(out, weights, total); err != nil {
		return nil, err
	}
	return out, nil
}

// balance nudges content slides by one minute at a time, heaviest first,
// until the durations sum to total. No slide drops below one minute.
func balance(out []Slide, weights []float64, total int) error {
	diff := total - TotalDuration(out)
	if diff == 0 {
		return nil
	}

	// order holds indices into out for the content slides.
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i + 1
	}
	sort.SliceStable(order, func(x, y int) bool {
		return weights[order[x]-1] > weights[order[y]-1]
	})

	limit := maxBalanceSteps + abs(diff)*len(order)
	for step := 0; diff != 0; step++ {
		if step >= limit {
			return &BudgetError{TotalMinutes: total, Slides: len(out)}
		}
		i := order[step%len(order)]
		switch {
		case diff > 0:
			out[i].Duration++
			diff--
		case out[i].Duration > 1:
			out[i].Duration--
			diff++
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
