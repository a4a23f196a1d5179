package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-bot/api/internal/llm"
)

func newTestEngine(t *testing.T, h http.HandlerFunc) *Engine {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	e := New("sk-test", "gpt-4o-mini")
	e.BaseURL = srv.URL
	return e
}

func TestComplete(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "classify this", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" physics\n"}}]}`))
	})

	out, err := e.Complete(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, " physics\n", out, "text is returned untouched")
}

func TestComplete_HTTPError(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	})

	_, err := e.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai 429")
	assert.Contains(t, err.Error(), "quota")
}

func TestComplete_NoChoices(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := e.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestComplete_EmptyKey(t *testing.T) {
	_, err := New("", "gpt-4o-mini").Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestComplete_ContextCancelled(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Complete(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
