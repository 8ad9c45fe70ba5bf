package timing

// DefaultTotalMinutes is the length of one class period.
const DefaultTotalMinutes = 40

const (
	// TitleMinutes is the fixed allotment for the first slide.
	TitleMinutes = 1

	// ClosureMinutes is the fixed allotment for the last slide when the
	// budget can afford it.
	ClosureMinutes = 2
)

// Slide is the allocator's view of one slide. Only the text fields are
// read; only Duration is written.
type Slide struct {
	Title             string
	Narration         string
	VisualDescription string

	// Duration is the allotted time in whole minutes.
	Duration int
}

// TotalDuration sums the Duration of every slide.
func TotalDuration(slides []Slide) int {
	total := 0
	for _, s := range slides {
		total += s.Duration
	}
	return total
}
