package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for tests and the "mock"
// provider setting. It returns canned responses in FIFO order and records
// all requests. With an empty queue it answers with Fallback when set.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback is returned once the queue is drained. Empty means the
	// provider reports itself unavailable.
	Fallback string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.Fallback != "" {
			return &Response{Text: m.Fallback, Model: "mock", StopReason: "end"}, nil
		}
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none were made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// sampleLesson is what the "mock" provider answers with, so the bot and
// the HTTP API can be exercised offline.
const sampleLesson = `## Learning Objectives
- Name the parts of a plant
- Explain what a plant needs to grow

## Materials Needed
- Chalkboard
- A few leaves collected outside

## Opening (6 min)
Ask students what they ate today that came from a plant.

## Main Activity (27 min)
**Step 1: Draw together**
Sketch a plant on the board and label roots, stem, leaves and flower.

**Step 2: Act it out**
Students act as roots drinking water, stems carrying it up and leaves catching sun.

## Practice
Pairs quiz each other on the part names.

## Closing (11 min)
Each student names one thing plants need.

## Differentiation
- Advanced: explain photosynthesis in one sentence
- Support: point to parts instead of naming them

## Assessment
Listen for correct part names during the pair quiz.

## Teacher Tips
- Keep the acting short and lively
`
