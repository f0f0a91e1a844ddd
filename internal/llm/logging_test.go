package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/store"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{Text: "lesson body", Usage: Usage{InputTokens: 12, OutputTokens: 34}})
	p := WithLogging(mock, "mock", events, nil)

	ctx := WithPurpose(context.Background(), PurposeLesson)
	resp, err := p.Generate(ctx, Request{System: "be kind", Messages: UserMessage("fractions")})
	require.NoError(t, err)
	assert.Equal(t, "lesson body", resp.Text)

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, PurposeLesson, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 34, ev.OutputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nbe kind")
	assert.Contains(t, ev.RequestBody, "fractions")
	assert.Equal(t, "lesson body", ev.ResponseBody)
}

func TestLogging_RecordsFailure(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("boom")}})
	p := WithLogging(mock, "mock", events, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, events.events, 1)
	assert.False(t, events.events[0].Success)
	assert.Contains(t, events.events[0].ErrorMessage, "boom")
	assert.Equal(t, "unknown", events.events[0].Purpose)
}

func TestLogging_RecorderErrorDoesNotFailCall(t *testing.T) {
	events := &recordingEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", events, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	out := serializeRequest(Request{Messages: UserMessage("hi"), Schema: requestSchema()})
	assert.Contains(t, out, "[user]\nhi")
	assert.Contains(t, out, "[schema: test-lesson-request]")
}
