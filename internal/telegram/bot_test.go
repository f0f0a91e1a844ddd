package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/wizard"
)

type fakeAPI struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	requests  []tgbotapi.Chattable
	updates   chan tgbotapi.Update
	fileURL   string
	rejectMD  bool
	stopCalls int
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return f.updates }
func (f *fakeAPI) StopReceivingUpdates()                                         { f.stopCalls++ }
func (f *fakeAPI) GetFileDirectURL(id string) (string, error)                    { return f.fileURL + "/" + id, nil }

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	if m, ok := c.(tgbotapi.MessageConfig); ok && f.rejectMD && m.ParseMode != "" {
		return tgbotapi.Message{}, &tgbotapi.Error{Code: 400, Message: "Bad Request: can't parse entities: Can't find end of the entity"}
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeHandler struct {
	mu      sync.Mutex
	users   []string
	events  []wizard.Event
	replies []wizard.Reply
}

func (h *fakeHandler) Handle(_ context.Context, userID string, ev wizard.Event) ([]wizard.Reply, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.users = append(h.users, userID)
	h.events = append(h.events, ev)
	return h.replies, nil
}

func message(text string) *tgbotapi.Message {
	m := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 1001},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return m
}

func TestEventMapping(t *testing.T) {
	audio := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ogg:" + strings.TrimPrefix(r.URL.Path, "/")))
	}))
	t.Cleanup(audio.Close)

	b := newBot(&fakeAPI{fileURL: audio.URL}, Config{}, &fakeHandler{}, nil)
	ctx := context.Background()

	voice := message("")
	voice.Voice = &tgbotapi.Voice{FileID: "file-1", Duration: 3}

	tests := []struct {
		name string
		upd  tgbotapi.Update
		want wizard.Event
	}{
		{"command", tgbotapi.Update{Message: message("/start")}, wizard.Command{Name: "start"}},
		{"text", tgbotapi.Update{Message: message("fractions for 8 year olds")}, wizard.Text{Body: "fractions for 8 year olds"}},
		{"callback", tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
			ID: "cb", From: &tgbotapi.User{ID: 42}, Message: message(""), Data: "subject:Science",
		}}, wizard.Press{Token: "subject:Science"}},
		{"voice", tgbotapi.Update{Message: voice}, wizard.Voice{Audio: []byte("ogg:file-1"), Filename: "voice.ogg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, chat, ev, ok := b.event(ctx, tt.upd)
			require.True(t, ok)
			assert.Equal(t, int64(42), user)
			assert.Equal(t, int64(1001), chat)
			assert.Equal(t, tt.want, ev)
		})
	}

	_, _, _, ok := b.event(ctx, tgbotapi.Update{Message: message("")})
	assert.False(t, ok, "empty messages are ignored")
	_, _, _, ok = b.event(ctx, tgbotapi.Update{})
	assert.False(t, ok)
}

func TestVoiceOverLimitIsEmpty(t *testing.T) {
	b := newBot(&fakeAPI{}, Config{MaxVoiceMB: 1}, &fakeHandler{}, nil)
	m := message("")
	m.Voice = &tgbotapi.Voice{FileID: "big", FileSize: 2 << 20}
	_, _, ev, ok := b.event(context.Background(), tgbotapi.Update{Message: m})
	require.True(t, ok)
	assert.Empty(t, ev.(wizard.Voice).Audio)
}

func TestRunDispatchesAndAnswersCallbacks(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 2)}
	h := &fakeHandler{replies: []wizard.Reply{
		{Text: "*Pick*", Markdown: true, Keyboard: [][]wizard.Button{{{Label: "Go", Token: "action:new"}}}},
		{Document: &wizard.Document{Filename: "fractions.pdf", Data: []byte("%PDF-1.3"), Caption: "ready"}},
	}}
	b := newBot(api, Config{}, h, nil)

	api.updates <- tgbotapi.Update{Message: message("/new")}
	api.updates <- tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID: "cb-1", From: &tgbotapi.User{ID: 42}, Message: message(""), Data: "action:new",
	}}
	close(api.updates)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, 1, api.stopCalls)
	assert.Equal(t, []string{"42", "42"}, h.users)
	require.Len(t, api.requests, 1)
	assert.Equal(t, "cb-1", api.requests[0].(tgbotapi.CallbackConfig).CallbackQueryID)

	require.Len(t, api.sent, 4)
	var docs int
	for _, c := range api.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			assert.Equal(t, tgbotapi.ModeMarkdown, m.ParseMode)
			kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
			require.True(t, ok)
			assert.Equal(t, "action:new", *kb.InlineKeyboard[0][0].CallbackData)
		case tgbotapi.DocumentConfig:
			docs++
			assert.Equal(t, "ready", m.Caption)
			assert.Equal(t, "fractions.pdf", m.File.(tgbotapi.FileBytes).Name)
			assert.Nil(t, m.ReplyMarkup)
		default:
			t.Fatalf("unexpected chattable %T", c)
		}
	}
	assert.Equal(t, 2, docs)
}

func TestUpdatesFromOneUserKeepTheirOrder(t *testing.T) {
	const n = 200
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 2*n)}
	h := &fakeHandler{}
	b := newBot(api, Config{}, h, nil)

	for i := range n {
		api.updates <- tgbotapi.Update{Message: message(fmt.Sprintf("m%d", i))}
		other := message(fmt.Sprintf("o%d", i))
		other.From = &tgbotapi.User{ID: 7}
		api.updates <- tgbotapi.Update{Message: other}
	}
	close(api.updates)

	require.NoError(t, b.Run(context.Background()))
	require.Len(t, h.events, 2*n)

	got := map[string][]string{}
	for i, ev := range h.events {
		got[h.users[i]] = append(got[h.users[i]], ev.(wizard.Text).Body)
	}
	for user, prefix := range map[string]string{"42": "m", "7": "o"} {
		require.Len(t, got[user], n, user)
		for i, body := range got[user] {
			if body != fmt.Sprintf("%s%d", prefix, i) {
				t.Fatalf("user %s: update %d handled as %q", user, i, body)
			}
		}
	}
	assert.Empty(t, b.queues)
}

func TestMarkdownRejectedFallsBackToPlain(t *testing.T) {
	api := &fakeAPI{rejectMD: true}
	b := newBot(api, Config{}, &fakeHandler{}, nil)

	err := b.send(1001, wizard.Reply{Text: "lesson_plan *unbalanced", Markdown: true})
	require.NoError(t, err)
	require.Len(t, api.sent, 2)
	assert.Equal(t, tgbotapi.ModeMarkdown, api.sent[0].(tgbotapi.MessageConfig).ParseMode)
	assert.Empty(t, api.sent[1].(tgbotapi.MessageConfig).ParseMode)
}

func TestLongTextIsSplit(t *testing.T) {
	api := &fakeAPI{}
	b := newBot(api, Config{}, &fakeHandler{}, nil)
	line := strings.Repeat("é", 99) + "\n"
	text := strings.Repeat(line, 90)

	require.NoError(t, b.send(1001, wizard.Reply{Text: text, Keyboard: [][]wizard.Button{{{Label: "x", Token: "action:new"}}}}))
	require.Len(t, api.sent, 3)
	var joined strings.Builder
	for i, c := range api.sent {
		m := c.(tgbotapi.MessageConfig)
		assert.LessOrEqual(t, len([]rune(m.Text)), MaxMessageLen)
		if i < 2 {
			assert.Nil(t, m.ReplyMarkup, "only the last chunk carries buttons")
		}
		joined.WriteString(m.Text)
	}
	assert.Equal(t, strings.Count(text, "é"), strings.Count(joined.String(), "é"))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"short"}, split("short", 10))
	assert.Equal(t, []string{"aaaa", "bbbb"}, split("aaaa\nbbbb", 6))
	assert.Equal(t, []string{"abcdef", "ghij"}, split("abcdefghij", 6))
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Config{}, &fakeHandler{}, nil)
	assert.ErrorIs(t, err, ErrNoToken)
}
