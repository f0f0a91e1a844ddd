package lesson

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/llm"
	"github.com/tooley/tooley/internal/logger"
)

// ErrEmptyLesson is returned when the backend answers with no text.
var ErrEmptyLesson = errors.New("generation returned an empty lesson")

// Config holds generation settings.
type Config struct {
	MaxTokens        int     `yaml:"max_tokens"`
	ExtractMaxTokens int     `yaml:"extract_max_tokens"`
	Temperature      float64 `yaml:"temperature"`
}

// DefaultConfig returns the bot's generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        2000,
		ExtractMaxTokens: 300,
		Temperature:      0.7,
	}
}

// Service generates and revises lesson plans. Each call is a single
// backend request.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Generate returns the lesson text for p.
func (s *Service) Generate(ctx context.Context, p Parameters) (string, error) {
	p = p.WithDefaults()
	prompt := BuildPrompt(p)

	s.log.Info("generating lesson",
		"subject", p.Subject, "topic", p.Topic, "format", p.Format.Value, "language", p.Language.Code())

	return s.complete(llm.WithPurpose(ctx, llm.PurposeLesson), prompt.System, prompt.User, s.cfg.MaxTokens)
}

// Revise applies teacher feedback to a previous lesson.
func (s *Service) Revise(ctx context.Context, p Parameters, previous, feedback string) (string, error) {
	p = p.WithDefaults()
	user := RevisionPrompt(p.Language, previous, strings.TrimSpace(feedback))
	return s.complete(llm.WithPurpose(ctx, llm.PurposeRevise), SystemPrompt(p.Language), user, s.cfg.MaxTokens)
}

func (s *Service) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    llm.UserMessage(user),
		MaxTokens:   maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("lesson generation: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyLesson
	}
	return text, nil
}

type requestOutput struct {
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
	Ages      string `json:"ages"`
	Duration  any    `json:"duration"`
	Country   string `json:"country"`
	Materials string `json:"materials"`
	Style     string `json:"style"`
}

// ParseRequest extracts parameters from a free-form request such as
// "science lesson about plants for 6-8 year olds in Kenya". The caller
// falls back to using the text as the topic when this fails.
func (s *Service) ParseRequest(ctx context.Context, text string, loc i18n.Locale) (Parameters, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Parameters{}, errors.New("empty request")
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExtract), llm.Request{
		System:      extractSystemPrompt,
		Messages:    llm.UserMessage(text),
		Schema:      RequestSchema,
		MaxTokens:   s.cfg.ExtractMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return Parameters{}, fmt.Errorf("parse request: %w", err)
	}

	var out requestOutput
	if err := resp.Decode(&out); err != nil {
		return Parameters{}, fmt.Errorf("parse request: %w", err)
	}
	if strings.TrimSpace(out.Topic) == "" {
		return Parameters{}, errors.New("parse request: no topic found")
	}

	p := Parameters{
		Subject:  strings.TrimSpace(out.Subject),
		Topic:    strings.TrimSpace(out.Topic),
		Ages:     strings.TrimSpace(out.Ages),
		Duration: durationString(out.Duration),
		Country:  strings.TrimSpace(out.Country),
		Language: loc,
	}
	p.SetMaterials(out.Materials)
	p.SetStyle(out.Style)
	return p, nil
}

func durationString(v any) string {
	switch d := v.(type) {
	case float64:
		if d > 0 {
			return strconv.Itoa(int(d))
		}
	case string:
		return strings.TrimSpace(d)
	}
	return ""
}
