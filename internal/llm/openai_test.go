package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajshul/focusflow/internal/model"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAI(OpenAIConfig{
		BaseURL:     srv.URL,
		Model:       "test-model",
		Temperature: 0.2,
		Timeout:     2 * time.Second,
	})
}

func TestInvokeMapsRolesAndReturnsText(t *testing.T) {
	var got chatRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "sure thing"}},
			},
		})
	})

	prior := []*model.Message{
		{Sender: model.SenderUser, Content: "earlier question"},
		{Sender: model.SenderAssistant, Content: "earlier answer"},
	}
	out, err := adapter.Invoke(context.Background(), "SYSTEM", prior, "new question")
	require.NoError(t, err)
	assert.Equal(t, "sure thing", out)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, chatMessage{Role: "system", Content: "SYSTEM"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "earlier question"}, got.Messages[1])
	assert.Equal(t, chatMessage{Role: "assistant", Content: "earlier answer"}, got.Messages[2])
	assert.Equal(t, chatMessage{Role: "user", Content: "new question"}, got.Messages[3])
	assert.Equal(t, "test-model", got.Model)
}

func TestInvokeMapsServerErrorToModelUnavailable(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "overloaded"},
		})
	})
	_, err := adapter.Invoke(context.Background(), "SYSTEM", nil, "hi")
	assert.ErrorIs(t, err, model.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestInvokeMapsEmptyCompletionToModelUnavailable(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})
	_, err := adapter.Invoke(context.Background(), "SYSTEM", nil, "hi")
	assert.ErrorIs(t, err, model.ErrModelUnavailable)
}

func TestInvokeMapsTransportFailureToModelUnavailable(t *testing.T) {
	adapter := NewOpenAI(OpenAIConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Model:   "test-model",
		Timeout: 200 * time.Millisecond,
	})
	_, err := adapter.Invoke(context.Background(), "SYSTEM", nil, "hi")
	assert.ErrorIs(t, err, model.ErrModelUnavailable)
}
