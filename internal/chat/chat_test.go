package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReplyUsesUpstream(t *testing.T) {
	var got completionRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "The Model 3 starts at $40,000."}},
			},
		})
	}))
	defer upstream.Close()

	c := NewClient("test-key", upstream.URL, "gpt-4o-mini", zap.NewNop())
	reply := c.Reply(context.Background(), "How much is the Tesla?", nil)

	assert.Equal(t, "The Model 3 starts at $40,000.", reply)
	require.NotEmpty(t, got.Messages)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[len(got.Messages)-1].Role)
	assert.Equal(t, "gpt-4o-mini", got.Model)
}

func TestReplyTrimsLongHistory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		json.NewDecoder(r.Body).Decode(&req)
		// system + 10 history + user
		if len(req.Messages) != 12 {
			http.Error(w, "history not trimmed", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer upstream.Close()

	history := make([]Message, 30)
	for i := range history {
		history[i] = Message{Role: "user", Content: "turn"}
	}

	c := NewClient("test-key", upstream.URL, "gpt-4o-mini", zap.NewNop())
	assert.Equal(t, "ok", c.Reply(context.Background(), "hi", history))
}

func TestReplyFallsBackWhenUnconfigured(t *testing.T) {
	c := NewClient("", "", "", zap.NewNop())

	reply := c.Reply(context.Background(), "Hello there", nil)
	assert.Contains(t, reply, "Welcome to CarHub")

	reply = c.Reply(context.Background(), "I want to buy a car", nil)
	assert.Contains(t, reply, "inventory")

	reply = c.Reply(context.Background(), "tell me about financing", nil)
	assert.Contains(t, reply, "finance application")
}

func TestReplyFallsBackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	c := NewClient("test-key", upstream.URL, "gpt-4o-mini", zap.NewNop())
	reply := c.Reply(context.Background(), "do you sell brake pads?", nil)
	assert.True(t, strings.Contains(reply, "spare parts"), "expected canned parts answer, got %q", reply)
}
