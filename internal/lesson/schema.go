package lesson

import "github.com/tooley/tooley/internal/llm"

const extractSystemPrompt = `You read a teacher's request for a lesson plan and extract its parameters. Copy values from the request; leave a field as an empty string when the request does not mention it. Never invent a country or age range.`

// RequestSchema is the structured form of a natural-language lesson request.
var RequestSchema = &llm.Schema{
	Name:        "lesson-request",
	Description: "Parameters of a lesson plan request",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{
				"type":        "string",
				"description": "School subject, e.g. Mathematics, Science, Reading",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "What the lesson is about, e.g. Fractions",
			},
			"ages": map[string]any{
				"type":        "string",
				"description": "Student age range such as 8-10, empty if not given",
			},
			"duration": map[string]any{
				"type":        "string",
				"description": "Class length in minutes as digits, empty if not given",
			},
			"country": map[string]any{
				"type":        "string",
				"description": "Country of the classroom, empty if not given",
			},
			"materials": map[string]any{
				"type":        "string",
				"enum":        []any{"", "none", "basic", "standard"},
				"description": "Available materials: none, basic or standard; empty if not given",
			},
			"style": map[string]any{
				"type":        "string",
				"enum":        []any{"", "interactive", "structured", "storytelling", "mixed"},
				"description": "Teaching style, empty if not given",
			},
		},
		"required":             []any{"subject", "topic", "ages", "duration", "country", "materials", "style"},
		"additionalProperties": false,
	},
}
