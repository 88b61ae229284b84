package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaServer(t *testing.T, handler http.HandlerFunc) *Ollama {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOllama(OllamaConfig{
		Endpoint: srv.URL,
		Model:    "llama3.2",
		Timeout:  2 * time.Second,
	}, nil)
}

func TestOllamaSummarize_Success(t *testing.T) {
	var gotBody ollamaRequest
	o := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.2",
			Response: `{"summary": "Two days on site.", "highlights": ["9h Monday"]}`,
		})
	})

	s, err := o.Summarize(context.Background(), sampleRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "Two days on site.", s.Text)
	assert.Equal(t, []string{"9h Monday"}, s.Highlights)

	assert.Equal(t, "llama3.2", gotBody.Model)
	assert.False(t, gotBody.Stream)
	assert.Contains(t, gotBody.Prompt, `"employee":"Alice"`)
	assert.Contains(t, gotBody.System, "payroll assistant")
}

func TestOllamaSummarize_EmptyResponse(t *testing.T) {
	o := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Response: "  "})
	})

	_, err := o.Summarize(context.Background(), sampleRequest(t))
	assert.ErrorIs(t, err, ErrEmptySummary)
}

func TestOllamaSummarize_ServerError(t *testing.T) {
	o := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := o.Summarize(context.Background(), sampleRequest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOllamaSummarize_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	o := NewOllama(OllamaConfig{Endpoint: url, Timeout: 2 * time.Second}, nil)
	_, err := o.Summarize(context.Background(), sampleRequest(t))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaSummarize_Timeout(t *testing.T) {
	o := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	o.cfg.Timeout = 20 * time.Millisecond

	_, err := o.Summarize(context.Background(), sampleRequest(t))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaAvailable(t *testing.T) {
	o := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, o.Available(context.Background()))

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	down := NewOllama(OllamaConfig{Endpoint: url}, nil)
	assert.False(t, down.Available(context.Background()))
}
