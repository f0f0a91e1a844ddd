package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-pro":       "gemini-2.0-pro",
		"gemini-2.5-flash": "gemini-2.5-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := requestSchema().Definition
	def["properties"].(map[string]any)["objectives"] = map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["duration"].Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for duration, got %s", schema.Properties["duration"].Type)
	}
	if len(schema.Properties["style"].Enum) != 4 {
		t.Fatalf("expected 4 enum values, got %d", len(schema.Properties["style"].Enum))
	}
	if schema.Properties["objectives"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING items, got %s", schema.Properties["objectives"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
