package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/i18n"
)

type upload struct {
	model, language, filename string
	audio                     []byte
}

func newTestWhisper(t *testing.T, status int, body any) (*Whisper, *upload) {
	t.Helper()
	got := &upload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got.model = r.FormValue("model")
		got.language = r.FormValue("language")
		if f, hdr, err := r.FormFile("file"); err == nil {
			got.filename = hdr.Filename
			got.audio, _ = io.ReadAll(f)
			f.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	w, err := NewWhisper(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, nil)
	require.NoError(t, err)
	return w, got
}

func TestWhisperTranscribe(t *testing.T) {
	w, got := newTestWhisper(t, http.StatusOK, map[string]any{"text": "  Lección de fracciones para niños de 8 años  "})

	text, err := w.Transcribe(context.Background(), []byte("OggS-fake"), "voice.ogg", i18n.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "Lección de fracciones para niños de 8 años", text)
	assert.Equal(t, DefaultModel, got.model)
	assert.Equal(t, "es", got.language)
	assert.Equal(t, "voice.ogg", got.filename)
	assert.Equal(t, []byte("OggS-fake"), got.audio)
}

func TestWhisperDefaultsFilename(t *testing.T) {
	w, got := newTestWhisper(t, http.StatusOK, map[string]any{"text": "water cycle"})
	_, err := w.Transcribe(context.Background(), []byte("x"), "file_12", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "voice.ogg", got.filename)
	assert.Equal(t, "en", got.language)
}

func TestWhisperEmptyTranscript(t *testing.T) {
	w, _ := newTestWhisper(t, http.StatusOK, map[string]any{"text": "   "})
	_, err := w.Transcribe(context.Background(), []byte("x"), "a.ogg", i18n.English)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = w.Transcribe(context.Background(), nil, "a.ogg", i18n.English)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWhisperBackendError(t *testing.T) {
	w, _ := newTestWhisper(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "rate limited", "type": "rate_limit"},
	})
	_, err := w.Transcribe(context.Background(), []byte("x"), "a.ogg", i18n.English)
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
}

func TestNewSelectsBackend(t *testing.T) {
	tr, err := New(Config{}, nil)
	require.NoError(t, err)
	_, err = tr.Transcribe(context.Background(), []byte("x"), "a.ogg", i18n.English)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewWhisper(Config{APIKey: " "}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	tr, err = New(Config{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Whisper{}, tr)
}
