package timing

import (
	"strings"
	"unicode/utf8"
)

const (
	baseWeight = 1.0

	// lengthDivisor converts title+narration characters into extra weight.
	lengthDivisor = 300.0
)

// Rule is one entry in the activity keyword table. A slide matches when its
// combined lower-cased text contains any keyword, or a question mark when
// MatchQuestion is set.
type Rule struct {
	Name          string
	Keywords      []string
	MatchQuestion bool
	Bonus         float64
}

// Matches reports whether the rule applies to already lower-cased text.
func (r Rule) Matches(text string) bool {
	if r.MatchQuestion && strings.ContainsAny(text, "?؟") {
		return true
	}
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DefaultRules returns the activity rules in priority order. The first
// matching rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "game",
			Keywords: []string{"لعبة", "لعب", "مسابقة", "منافسة", "تحدي", "game", "competition", "challenge"},
			Bonus:    3.5,
		},
		{
			Name:     "hands-on",
			Keywords: []string{"نشاط", "ورقة عمل", "رسم", "ارسم", "طبخ", "activity", "worksheet", "drawing", "cooking"},
			Bonus:    3.0,
		},
		{
			Name:          "discussion",
			Keywords:      []string{"نقاش", "مناقشة", "حوار", "ماذا ترى", "discussion", "dialogue", "what do you see"},
			MatchQuestion: true,
			Bonus:         2.0,
		},
		{
			Name:     "media",
			Keywords: []string{"فيديو", "استمع", "قصة", "video", "listen", "story"},
			Bonus:    2.5,
		},
		{
			Name:     "example",
			Keywords: []string{"مثال", "شرح", "example", "explanation"},
			Bonus:    1.5,
		},
	}
}

// Classify returns the first rule matching the slide's text.
func (a *Allocator) Classify(s Slide) (Rule, bool) {
	text := strings.ToLower(s.Title + " " + s.Narration + " " + s.VisualDescription)
	for _, r := range a.rules {
		if r.Matches(text) {
			return r, true
		}
	}
	return Rule{}, false
}

// Weight scores a content slide. Length is counted in characters, not
// bytes, so Arabic and Latin text weigh the same per letter.
func (a *Allocator) Weight(s Slide) float64 {
	chars := utf8.RuneCountInString(s.Title) + utf8.RuneCountInString(s.Narration)
	w := baseWeight + float64(chars)/lengthDivisor
	if r, ok := a.Classify(s); ok {
		w += r.Bonus
	}
	return w
}
