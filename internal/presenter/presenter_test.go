package presenter

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/darsplan/internal/deck"
)

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:           "d1",
		Title:        "Fractions",
		TotalMinutes: 10,
		Slides: []deck.Slide{
			{Title: "Fractions", Duration: 1},
			{Title: "Halves and quarters", Narration: "Cut the pizza.", VisualDescription: "A pizza in four slices", Duration: 7},
			{Title: "Summary", Duration: 2},
		},
	}
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestInitReturnsTick(t *testing.T) {
	if New(testDeck()).Init() == nil {
		t.Fatal("Init should schedule a tick")
	}
}

func TestTickAdvancesTimers(t *testing.T) {
	m := update(t, New(testDeck()), tickMsg(time.Now()), tickMsg(time.Now()))
	if m.SlideElapsed() != 2*time.Second || m.LessonElapsed() != 2*time.Second {
		t.Errorf("elapsed = %v/%v, want 2s/2s", m.SlideElapsed(), m.LessonElapsed())
	}

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestNavigationResetsSlideTimer(t *testing.T) {
	m := update(t, New(testDeck()), tickMsg(time.Now()), tea.KeyPressMsg{Code: tea.KeyRight})
	if m.Index() != 1 {
		t.Fatalf("index = %d, want 1", m.Index())
	}
	if m.SlideElapsed() != 0 {
		t.Errorf("slide timer = %v, want 0", m.SlideElapsed())
	}
	if m.LessonElapsed() != time.Second {
		t.Errorf("lesson timer = %v, want 1s", m.LessonElapsed())
	}

	m = update(t, m, key("l"), key("l"), key("l"))
	if m.Index() != 2 {
		t.Errorf("index = %d, want clamp at 2", m.Index())
	}

	m = update(t, m, tickMsg(time.Now()), key("l"))
	if m.SlideElapsed() != time.Second {
		t.Error("staying on the last slide should not reset its timer")
	}

	m = update(t, m, key("h"), tea.KeyPressMsg{Code: tea.KeyLeft}, key("h"))
	if m.Index() != 0 {
		t.Errorf("index = %d, want clamp at 0", m.Index())
	}
}

func TestPauseStopsTimers(t *testing.T) {
	m := update(t, New(testDeck()), key("p"), tickMsg(time.Now()), tickMsg(time.Now()))
	if !m.Paused() {
		t.Fatal("expected paused")
	}
	if m.LessonElapsed() != 0 {
		t.Errorf("lesson timer advanced while paused: %v", m.LessonElapsed())
	}

	m = update(t, m, key("p"), tickMsg(time.Now()))
	if m.Paused() || m.LessonElapsed() != time.Second {
		t.Errorf("paused=%v elapsed=%v after resume", m.Paused(), m.LessonElapsed())
	}
}

func TestJumpToSlide(t *testing.T) {
	m := update(t, New(testDeck()), key("g"))
	if !m.Jumping() {
		t.Fatal("g should open the jump prompt")
	}

	m = update(t, m, key("x"), key("3"), tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Jumping() {
		t.Error("enter should close the jump prompt")
	}
	if m.Index() != 2 {
		t.Errorf("index = %d, want 2", m.Index())
	}
}

func TestJumpOutOfRangeClamps(t *testing.T) {
	m := update(t, New(testDeck()), key("g"), key("9"), key("9"), tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Index() != 2 {
		t.Errorf("index = %d, want 2", m.Index())
	}
}

func TestJumpEscapeCancels(t *testing.T) {
	m := update(t, New(testDeck()), key("g"), key("2"), tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.Jumping() || m.Index() != 0 {
		t.Errorf("jumping=%v index=%d after esc", m.Jumping(), m.Index())
	}
}

func TestJumpSwallowsNavigationKeys(t *testing.T) {
	m := update(t, New(testDeck()), key("g"), key("q"), key("l"))
	if !m.Jumping() || m.Index() != 0 {
		t.Errorf("jumping=%v index=%d", m.Jumping(), m.Index())
	}
}

func TestQuit(t *testing.T) {
	_, cmd := New(testDeck()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewShowsSlideAndOvertime(t *testing.T) {
	m := update(t, New(testDeck()), tea.WindowSizeMsg{Width: 100, Height: 30}, key("l"))
	out := m.render()
	for _, want := range []string{"Halves and quarters", "Cut the pizza.", "Slide 2/3", "7 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "Over by") {
		t.Error("fresh slide should not be over time")
	}

	m.slideElapsed = 8 * time.Minute
	if !strings.Contains(m.render(), "Over by 1:00") {
		t.Error("expected overtime notice")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := update(t, New(testDeck()), tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(m.render(), "too small") {
		t.Error("expected min size message")
	}
	if !m.View().AltScreen {
		t.Error("presenter should use the alt screen")
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		elapsed, total time.Duration
		want           float64
	}{
		{0, time.Minute, 0},
		{30 * time.Second, time.Minute, 0.5},
		{2 * time.Minute, time.Minute, 1},
		{time.Second, 0, 1},
	}
	for _, tt := range tests {
		if got := ratio(tt.elapsed, tt.total); got != tt.want {
			t.Errorf("ratio(%v, %v) = %v, want %v", tt.elapsed, tt.total, got, tt.want)
		}
	}
}
