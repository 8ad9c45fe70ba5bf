package deck

import "github.com/abhisek/darsplan/internal/llm"

// Activity kinds the model may tag a slide with. They are shown in the
// lesson plan; timing is derived from the slide text alone.
var activityKinds = []any{"intro", "explanation", "example", "discussion", "game", "hands-on", "media", "closure"}

// DeckSchema is the structured output requested from the model.
var DeckSchema = &llm.Schema{
	Name:        "lesson-deck",
	Description: "A classroom slide deck with narration for the teacher",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Lesson title shown on the first slide",
			},
			"slides": map[string]any{
				"type":        "array",
				"minItems":    MinSlides,
				"maxItems":    MaxSlides,
				"description": "Slides in teaching order. The first is the title slide and the last is the closure.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Slide heading (2-8 words)",
						},
						"narration": map[string]any{
							"type":        "string",
							"description": "What the teacher says or asks while this slide is shown",
						},
						"visual_description": map[string]any{
							"type":        "string",
							"description": "The image or diagram to put on the slide",
						},
						"activity": map[string]any{
							"type": "string",
							"enum": activityKinds,
						},
					},
					"required":             []any{"title", "narration", "visual_description", "activity"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "slides"},
		"additionalProperties": false,
	},
}
