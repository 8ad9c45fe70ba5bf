package deck

import (
	"fmt"
	"strings"
)

const deckSystemPrompt = `You are an experienced primary and middle school teacher who designs slide decks for a single class period. Every slide carries the narration the teacher will speak, written for the stated grade.`

var languageNames = map[string]string{
	"ar": "Arabic",
	"en": "English",
	"fr": "French",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	if code == "" {
		return "Arabic"
	}
	return code
}

func buildDeckUserMessage(req Request, totalMinutes int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	}
	if req.Grade != "" {
		fmt.Fprintf(&b, "Grade: %s\n", req.Grade)
	}
	fmt.Fprintf(&b, "Language: %s\n", languageName(req.Language))
	fmt.Fprintf(&b, "Class period: %d minutes\n", totalMinutes)
	if req.SlideCount > 0 {
		fmt.Fprintf(&b, "Number of slides: exactly %d\n", req.SlideCount)
	} else {
		fmt.Fprintf(&b, "Number of slides: choose between %d and %d\n", MinSlides, MaxSlides)
	}

	if len(req.Objectives) > 0 {
		b.WriteString("\nLearning objectives:\n")
		for _, o := range req.Objectives {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}

	b.WriteString(`
Instructions:
1. The first slide is a title slide that names the lesson. The last slide is a short closure that recaps the key idea.
2. Between them, teach the topic step by step. Mix explanation with examples, questions to the class, short games or competitions, hands-on activities such as worksheets or drawing, and short videos or stories where they fit.
3. Write the narration as the teacher would say it. Ask real questions where a discussion is intended.
4. Describe one simple visual per slide.
5. Write every title, narration and visual description in the requested language.
6. Do not put timings in the text. Time is assigned to each slide afterwards.`)

	return b.String()
}
