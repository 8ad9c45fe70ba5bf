package timing

import (
	"math"
	"strings"
	"testing"
)

func TestClassify_PriorityOrder(t *testing.T) {
	a := New()
	tests := []struct {
		name  string
		slide Slide
		want  string
	}{
		{"game keyword", Slide{Title: "لعبة الأرقام"}, "game"},
		{"competition in narration", Slide{Narration: "مسابقة بين المجموعات"}, "game"},
		{"game beats question mark", Slide{Title: "تحدي اليوم؟"}, "game"},
		{"worksheet", Slide{Title: "ورقة عمل"}, "hands-on"},
		{"drawing in visual", Slide{VisualDescription: "رسم شجرة"}, "hands-on"},
		{"hands-on beats media", Slide{Title: "نشاط", Narration: "استمع ثم نفذ"}, "hands-on"},
		{"what do you see", Slide{Title: "ماذا ترى في الصورة"}, "discussion"},
		{"arabic question mark", Slide{Narration: "كم عدد التفاحات؟"}, "discussion"},
		{"latin question mark", Slide{Narration: "How many apples?"}, "discussion"},
		{"question beats media", Slide{Title: "قصة", Narration: "من البطل؟"}, "discussion"},
		{"video", Slide{VisualDescription: "فيديو قصير"}, "media"},
		{"story", Slide{Title: "قصة الأرنب"}, "media"},
		{"example", Slide{Title: "مثال"}, "example"},
		{"explanation", Slide{Narration: "شرح القاعدة"}, "example"},
		{"english is case-insensitive", Slide{Title: "Team GAME"}, "game"},
		{"no keyword", Slide{Title: "الجمع", Narration: "نجمع العددين"}, ""},
		{"empty slide", Slide{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := a.Classify(tt.slide)
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no match, got %q", rule.Name)
				}
				return
			}
			if !ok {
				t.Fatalf("expected %q, got no match", tt.want)
			}
			if rule.Name != tt.want {
				t.Errorf("got rule %q, want %q", rule.Name, tt.want)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	a := New()
	tests := []struct {
		name  string
		slide Slide
		want  float64
	}{
		{"empty slide is base weight", Slide{}, 1.0},
		{"length counts title and narration", Slide{Title: "abc", Narration: strings.Repeat("x", 297)}, 2.0},
		{"visual text adds no length", Slide{VisualDescription: strings.Repeat("x", 300)}, 1.0},
		{"arabic counted by character", Slide{Narration: strings.Repeat("ن", 150)}, 1.5},
		{"game bonus", Slide{Title: "لعبة"}, 1.0 + 4.0/300 + 3.5},
		{"hands-on bonus", Slide{Title: "طبخ"}, 1.0 + 3.0/300 + 3.0},
		{"discussion bonus", Slide{Title: "?"}, 1.0 + 1.0/300 + 2.0},
		{"media bonus", Slide{VisualDescription: "video"}, 1.0 + 2.5},
		{"example bonus", Slide{VisualDescription: "مثال"}, 1.0 + 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Weight(tt.slide)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Weight() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestWeight_AlwaysPositive(t *testing.T) {
	a := New()
	for _, s := range mixedSlides(14) {
		if w := a.Weight(s); w <= 0 {
			t.Fatalf("weight %f for %+v", w, s)
		}
	}
}

func TestDefaultRules_BonusesPositive(t *testing.T) {
	for _, r := range DefaultRules() {
		if r.Bonus <= 0 {
			t.Errorf("rule %q has bonus %f", r.Name, r.Bonus)
		}
	}
}
