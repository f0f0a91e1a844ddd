package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction over a text-generation backend.
type Provider interface {
	// Generate sends a prompt and returns the model output. When the
	// request carries a Schema the output is JSON validated against it,
	// otherwise it is free text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Lesson generation sends one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single-turn conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "lesson-request".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Text is the generated output: free text, or JSON when a Schema was set.
	Text string

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Decode unmarshals a structured response into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(stripFences(r.Text)), v); err != nil {
		return &ErrInvalidResponse{Content: r.Text, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
