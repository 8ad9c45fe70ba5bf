package timing

import (
	"errors"
	"fmt"
)

// ErrNoSlides is returned when there is nothing to allocate.
var ErrNoSlides = errors.New("no slides to allocate")

// ErrInsufficientBudget indicates the total duration cannot give every
// slide at least one minute.
var ErrInsufficientBudget = errors.New("requested total duration is insufficient for slide count")

// BudgetError reports an insufficient budget along with the numbers that
// caused it. It unwraps to ErrInsufficientBudget.
type BudgetError struct {
	TotalMinutes int
	Slides       int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%v: %d minutes for %d slides", ErrInsufficientBudget, e.TotalMinutes, e.Slides)
}

func (e *BudgetError) Unwrap() error { return ErrInsufficientBudget }
