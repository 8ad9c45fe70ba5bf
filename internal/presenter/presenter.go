// Package presenter shows a timed deck one slide at a time in the terminal.
package presenter

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/darsplan/internal/deck"
	"github.com/abhisek/darsplan/internal/ui/components"
	"github.com/abhisek/darsplan/internal/ui/layout"
	"github.com/abhisek/darsplan/internal/ui/theme"
)

const tickInterval = time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the presenter state. Update never mutates the receiver's deck.
type Model struct {
	deck  *deck.Deck
	index int

	// slideElapsed resets when the slide changes; lessonElapsed does not.
	slideElapsed  time.Duration
	lessonElapsed time.Duration
	paused        bool

	jumping bool
	jump    components.NumberInput

	width, height int
}

// New returns a presenter positioned on the first slide of d.
func New(d *deck.Deck) Model {
	return Model{deck: d, width: 80, height: 24}
}

// Index returns the zero-based current slide.
func (m Model) Index() int                   { return m.index }
func (m Model) Paused() bool                 { return m.paused }
func (m Model) Jumping() bool                { return m.jumping }
func (m Model) SlideElapsed() time.Duration  { return m.slideElapsed }
func (m Model) LessonElapsed() time.Duration { return m.lessonElapsed }

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles timer ticks, navigation keys and the jump prompt.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if !m.paused {
			m.slideElapsed += tickInterval
			m.lessonElapsed += tickInterval
		}
		return m, tick()

	case tea.KeyPressMsg:
		if m.jumping {
			return m.updateJump(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "space", " ", "n":
			return m.goTo(m.index + 1), nil
		case "left", "h", "b":
			return m.goTo(m.index - 1), nil
		case "home":
			return m.goTo(0), nil
		case "end":
			return m.goTo(len(m.deck.Slides) - 1), nil
		case "p":
			m.paused = !m.paused
			return m, nil
		case "g":
			m.jumping = true
			m.jump = components.NewNumberInput("Go to slide: ", fmt.Sprintf("1-%d", len(m.deck.Slides)), 2)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateJump(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.jumping = false
		return m, nil
	case "enter":
		m.jumping = false
		if n, err := m.jump.Value(); err == nil {
			return m.goTo(n - 1), nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

// goTo moves to slide i, clamped to the deck. Moving restarts the slide
// timer; staying put does not.
func (m Model) goTo(i int) Model {
	i = max(0, min(i, len(m.deck.Slides)-1))
	if i != m.index {
		m.index = i
		m.slideElapsed = 0
	}
	return m
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	d := m.deck
	s := d.Slides[m.index]

	status := fmt.Sprintf("Slide %d/%d", m.index+1, len(d.Slides))
	if m.paused {
		status = theme.Paused.Render("PAUSED") + "  " + status
	}
	header := layout.RenderHeader(d.Title, status, m.width)

	footer := layout.RenderFooter([]layout.KeyHint{
		{Key: "←/→", Description: "prev/next"},
		{Key: "p", Description: "pause"},
		{Key: "g", Description: "go to"},
		{Key: "q", Description: "quit"},
	}, m.width)

	return layout.RenderFrame(header, m.renderSlide(s), footer, m.width, m.height)
}

func (m Model) renderSlide(s deck.Slide) string {
	inner := m.width - 6
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.Title))
	b.WriteString("  ")
	b.WriteString(theme.Minutes.Render(fmt.Sprintf("%d min", s.Duration)))
	b.WriteString("\n\n")

	if s.Narration != "" {
		b.WriteString(theme.Body.Width(inner).Render(s.Narration))
		b.WriteString("\n\n")
	}
	if s.VisualDescription != "" {
		b.WriteString(theme.Visual.Width(inner).Render("Visual: " + s.VisualDescription))
		b.WriteString("\n\n")
	}

	allotted := time.Duration(s.Duration) * time.Minute
	slideBar := components.NewProgressBar("Slide ", ratio(m.slideElapsed, allotted), inner).
		WithSuffix(components.Clock(int(m.slideElapsed.Seconds())) + " / " + components.Clock(int(allotted.Seconds())))
	if m.slideElapsed > allotted {
		slideBar = slideBar.WithFill(theme.Error)
	}
	b.WriteString(slideBar.View())
	b.WriteString("\n")

	lesson := time.Duration(m.deck.TotalMinutes) * time.Minute
	lessonBar := components.NewProgressBar("Lesson", ratio(m.lessonElapsed, lesson), inner).
		WithSuffix(components.Clock(int(m.lessonElapsed.Seconds())) + " / " + components.Clock(int(lesson.Seconds())))
	b.WriteString(lessonBar.View())

	if m.slideElapsed > allotted {
		b.WriteString("\n\n")
		b.WriteString(theme.Overtime.Render(fmt.Sprintf("Over by %s", components.Clock(int((m.slideElapsed - allotted).Seconds())))))
	}
	if m.jumping {
		b.WriteString("\n\n")
		b.WriteString(m.jump.View())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return min(1, float64(elapsed)/float64(total))
}

// Run presents d until the user quits or ctx is cancelled.
func Run(ctx context.Context, d *deck.Deck) error {
	if len(d.Slides) == 0 {
		return deck.ErrEmptyDeck
	}
	_, err := tea.NewProgram(New(d), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("presenter: %w", err)
	}
	return nil
}
