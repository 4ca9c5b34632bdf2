package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajshul/focusflow/internal/chat"
	"github.com/ajshul/focusflow/internal/memory"
	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/prompt"
	memstore "github.com/ajshul/focusflow/internal/store/memory"
	"github.com/ajshul/focusflow/internal/thread"
)

type echoInvoker struct{}

func (echoInvoker) Invoke(ctx context.Context, systemPrompt string, prior []*model.Message, userText string) (string, error) {
	return "echo: " + userText, nil
}

func newTestRouter() (*httptest.Server, *memstore.Store) {
	st := memstore.New()
	agg := memory.NewAggregator(st, zerolog.Nop())
	svc := chat.NewService(st, agg, prompt.NewComposer(10), echoInvoker{}, zerolog.Nop())
	return httptest.NewServer(NewRouter(svc, st)), st
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

var profile = &model.UserProfile{ID: "u1", Name: "Alex"}

func TestChatEndpointDeliversReply(t *testing.T) {
	srv, st := newTestRouter()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v0/chat", map[string]interface{}{
		"profile": profile,
		"text":    "hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	reply := body["reply"].(map[string]interface{})
	assert.Equal(t, "echo: hello", reply["content"])

	msgs, err := st.ReadAll(context.Background(), thread.ID("u1", thread.Coach()))
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestChatEndpointWhitespaceReturnsNoContent(t *testing.T) {
	srv, st := newTestRouter()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v0/chat", map[string]interface{}{
		"profile": profile,
		"text":    "   \n",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	msgs, _ := st.ReadAll(context.Background(), thread.ID("u1", thread.Coach()))
	assert.Empty(t, msgs)
}

func TestChatEndpointValidation(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v0/chat", map[string]interface{}{"text": "hi"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Post(srv.URL+"/v0/chat", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestThreadEndpoints(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	task := &model.Task{ID: "42", Title: "Write report"}
	resp := postJSON(t, srv.URL+"/v0/chat", map[string]interface{}{
		"profile": profile, "task": task, "text": "start",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Enumerate the owner's threads.
	listResp, err := http.Get(srv.URL + "/v0/owners/u1/threads")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decodeBody(t, listResp)
	assert.Equal(t, float64(1), list["count"])

	// Read the thread's history.
	tid := thread.ID("u1", thread.ForTask("42"))
	histResp, err := http.Get(srv.URL + "/v0/threads/" + tid + "/messages")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	hist := decodeBody(t, histResp)
	assert.Equal(t, "Task 42", hist["label"])
	msgs := hist["messages"].([]interface{})
	require.Len(t, msgs, 2)
	msgID := msgs[1].(map[string]interface{})["id"].(string)

	// Edit the reply.
	buf, _ := json.Marshal(map[string]string{"content": "corrected"})
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/v0/threads/"+tid+"/messages/"+msgID, bytes.NewReader(buf))
	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = patchResp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, patchResp.StatusCode)

	// Editing a missing message is 404.
	req, _ = http.NewRequest(http.MethodPatch, srv.URL+"/v0/threads/"+tid+"/messages/missing", bytes.NewReader(buf))
	missResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = missResp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, missResp.StatusCode)

	// Delete is idempotent, even for absent ids.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/v0/threads/"+tid+"/messages/missing", nil)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = delResp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	// Clear empties the thread but keeps it listed.
	clrResp := postJSON(t, srv.URL+"/v0/threads/"+tid+"/clear", map[string]string{})
	defer func() { _ = clrResp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, clrResp.StatusCode)

	histResp2, err := http.Get(srv.URL + "/v0/threads/" + tid + "/messages")
	require.NoError(t, err)
	hist2 := decodeBody(t, histResp2)
	assert.Equal(t, float64(0), hist2["count"])
}

func TestHistoryUnknownThreadIsEmptyList(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v0/threads/user_nobody_coach/messages")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["count"])
}

func TestPreviewEndpoint(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v0/prompt/preview", map[string]interface{}{"profile": profile})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["prompt"], "No previous conversations available.")
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v0/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "primary", body["store"])
}
