package lesson

import (
	"errors"
	"strings"
	"testing"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/llm"
)

func TestService_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  ## Learning Objectives\n- count  "})
	svc := NewService(mock, DefaultConfig(), nil)

	got, err := svc.Generate(t.Context(), Parameters{Topic: "Counting", Duration: "30"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "## Learning Objectives\n- count" {
		t.Errorf("text not trimmed: %q", got)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected exactly one backend call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", req.MaxTokens)
	}
	if req.System != SystemPrompt(i18n.English) {
		t.Error("expected the English system prompt")
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "30-minute") {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}
	if req.Schema != nil {
		t.Error("lesson generation must be free text")
	}
}

func TestService_GenerateErrorNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Text: "should not be reached"},
	)
	svc := NewService(mock, DefaultConfig(), nil)

	_, err := svc.Generate(t.Context(), Parameters{})
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("expected a single attempt, got %d", len(mock.Calls))
	}
}

func TestService_GenerateEmpty(t *testing.T) {
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Text: "   "}), DefaultConfig(), nil)
	if _, err := svc.Generate(t.Context(), Parameters{}); !errors.Is(err, ErrEmptyLesson) {
		t.Fatalf("expected ErrEmptyLesson, got %v", err)
	}
}

func TestService_Revise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "revised"})
	svc := NewService(mock, DefaultConfig(), nil)

	got, err := svc.Revise(t.Context(), Parameters{Language: i18n.Spanish}, "old plan", " más juegos ")
	if err != nil {
		t.Fatalf("Revise: %v", err)
	}
	if got != "revised" {
		t.Errorf("got %q", got)
	}
	req := mock.Calls[0]
	if req.System != SystemPrompt(i18n.Spanish) {
		t.Error("expected the Spanish system prompt")
	}
	if !strings.Contains(req.Messages[0].Content, "old plan") || !strings.Contains(req.Messages[0].Content, "cambios: más juegos") {
		t.Errorf("unexpected revision prompt: %q", req.Messages[0].Content)
	}
}

func TestService_ParseRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + `{
		"subject": "Science",
		"topic": "Plants",
		"ages": "6-8",
		"duration": "40",
		"country": "Kenya",
		"materials": "none",
		"style": ""
	}` + "\n```"})
	svc := NewService(mock, DefaultConfig(), nil)

	p, err := svc.ParseRequest(t.Context(), "Science lesson about plants for 6-8 year olds in Kenya, no materials", i18n.English)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	want := Parameters{Subject: "Science", Topic: "Plants", Ages: "6-8", Duration: "40", Country: "Kenya",
		Materials: MaterialsNone, Language: i18n.English}
	if p != want {
		t.Errorf("got %+v\nwant %+v", p, want)
	}
	if mock.Calls[0].Schema != RequestSchema {
		t.Error("extraction must use RequestSchema")
	}
}

func TestService_ParseRequestNumericDuration(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"subject":"","topic":"Fractions","ages":"","duration":45,"country":"","materials":"","style":"games"}`})
	svc := NewService(mock, DefaultConfig(), nil)

	p, err := svc.ParseRequest(t.Context(), "fractions", i18n.Spanish)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if p.Duration != "45" || p.Style != StyleCustom || p.StyleNote != "games" || p.Language != i18n.Spanish {
		t.Errorf("unexpected parameters %+v", p)
	}
}

func TestService_ParseRequestFailures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		text string
	}{
		{"backend error", llm.MockResponse{Err: errors.New("boom")}, "fractions"},
		{"not json", llm.MockResponse{Text: "Sure! Here is a lesson"}, "fractions"},
		{"no topic", llm.MockResponse{Text: `{"topic":""}`}, "hello"},
		{"empty input", llm.MockResponse{Text: `{"topic":"x"}`}, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig(), nil)
			if _, err := svc.ParseRequest(t.Context(), tt.text, i18n.English); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
