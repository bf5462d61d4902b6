package aiconnectors

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderForModel(t *testing.T) {
	tests := map[string]Provider{
		"gpt-4o":                     ProviderOpenAI,
		"GPT-4o-mini":                ProviderOpenAI,
		"o3-mini":                    ProviderOpenAI,
		"gemini-2.5-flash":           ProviderGemini,
		"claude-3-5-sonnet-20241022": ProviderClaude,
		"command-r":                  ProviderCohere,
		"llama3":                     ProviderOllama,
		"":                           ProviderOllama,
	}
	for model, want := range tests {
		assert.Equal(t, want, ProviderForModel(model), model)
	}
}

func TestReady_MissingCredentials(t *testing.T) {
	svc := NewService(Settings{Providers: map[Provider]ProviderSettings{
		ProviderOpenAI: {APIKey: "sk-test"},
	}})

	assert.NoError(t, svc.Ready("gpt-4o"))
	assert.ErrorIs(t, svc.Ready("claude-3-haiku"), ErrProviderNotConfigured)
	assert.ErrorIs(t, svc.Ready("llama3"), ErrProviderNotConfigured)

	_, err := svc.Complete(context.Background(), "prompt", "gemini-2.5-flash")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func fakeOpenAI(t *testing.T, reply string, calls *int32, prompts chan<- string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		if prompts != nil && len(req.Messages) > 0 {
			prompts <- req.Messages[len(req.Messages)-1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
}

func TestComplete_ReturnsReplyVerbatim(t *testing.T) {
	var calls int32
	prompts := make(chan string, 2)
	server := fakeOpenAI(t, "  ## Bugs\n- none  ", &calls, prompts)
	defer server.Close()

	svc := NewService(Settings{
		Providers: map[Provider]ProviderSettings{
			ProviderOpenAI: {APIKey: "sk-test", BaseURL: server.URL},
		},
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100,
		Burst:             2,
	})

	out, err := svc.Complete(context.Background(), "review {this}", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "  ## Bugs\n- none  ", out)
	assert.Equal(t, "review {this}", <-prompts)

	_, err = svc.Complete(context.Background(), "again", "gpt-4o")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.Len(t, svc.connectors, 1)
}

func TestComplete_ProviderErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(Settings{Providers: map[Provider]ProviderSettings{
		ProviderOpenAI: {APIKey: "sk-test", BaseURL: server.URL},
	}})

	_, err := svc.Complete(context.Background(), "prompt", "gpt-4o")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProviderNotConfigured)
}

func TestModels_ListsOllamaTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3:latest"},{"name":"qwen2.5-coder"}]}`))
	}))
	defer server.Close()

	svc := NewService(Settings{Providers: map[Provider]ProviderSettings{
		ProviderOpenAI: {APIKey: "sk-test", Models: []string{"gpt-4o", "gpt-4o-mini"}},
		ProviderOllama: {BaseURL: server.URL},
	}})

	models := svc.Models(context.Background())
	require.Len(t, models, len(Providers))

	byProvider := map[Provider]ModelInfo{}
	for _, m := range models {
		byProvider[m.Provider] = m
	}
	assert.True(t, byProvider[ProviderOpenAI].Configured)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, byProvider[ProviderOpenAI].Models)
	assert.False(t, byProvider[ProviderClaude].Configured)
	assert.Equal(t, []string{"llama3:latest", "qwen2.5-coder"}, byProvider[ProviderOllama].Models)
}
