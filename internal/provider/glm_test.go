package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/types"
)

func glmTestAdapter(endpoint string) *GLMAdapter {
	return NewGLMAdapter(config.ProviderConfig{
		APIKey:   "test-key",
		Endpoint: endpoint,
		Model:    "glm-4.5-flash",
	}, 5*time.Second)
}

func TestGLMAdapter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index":0,"message":{"role":"assistant","content":"glm says hi"},"finish_reason":"stop"}],
			"usage": {"prompt_tokens":9,"completion_tokens":4,"total_tokens":13}
		}`)
	}))
	defer server.Close()

	adapter := glmTestAdapter(server.URL)

	history := []*types.Message{
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello"},
		{Role: types.RoleUser, Content: "say hi"},
	}

	result, err := adapter.Complete(context.Background(), history, types.CompletionOptions{MaxTokens: 100, Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, "glm says hi", result.Content)
	assert.Equal(t, "glm-4.5-flash", result.Model)
	assert.Equal(t, 9, result.Usage.PromptTokens)
	assert.Equal(t, 4, result.Usage.CompletionTokens)
	assert.Equal(t, 13, result.Usage.TotalTokens)
}

func TestGLMAdapter_AuthMissing(t *testing.T) {
	adapter := NewGLMAdapter(config.ProviderConfig{
		Endpoint: "http://127.0.0.1:1",
		Model:    "glm-4.5-flash",
	}, 5*time.Second)

	_, err := adapter.Complete(context.Background(), []*types.Message{
		{Role: types.RoleUser, Content: "hi"},
	}, types.CompletionOptions{})

	require.Error(t, err)
	assert.Equal(t, types.ErrAuthMissing, types.KindOf(err))
}

func TestGLMAdapter_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	}))
	defer server.Close()

	adapter := glmTestAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), []*types.Message{
		{Role: types.RoleUser, Content: "hi"},
	}, types.CompletionOptions{})

	require.Error(t, err)
	var pe *types.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ErrHTTPError, pe.Kind)
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
}

func TestGLMAdapter_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`)
	}))
	defer server.Close()

	adapter := glmTestAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), []*types.Message{
		{Role: types.RoleUser, Content: "hi"},
	}, types.CompletionOptions{})

	require.Error(t, err)
	assert.Equal(t, types.ErrMalformedResponse, types.KindOf(err))
}
