package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajshul/focusflow/internal/api/respond"
	"github.com/ajshul/focusflow/internal/chat"
	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/thread"
)

// ThreadHandler handles thread enumeration and message maintenance.
type ThreadHandler struct {
	svc *chat.Service
}

// NewThreadHandler creates a new thread handler.
func NewThreadHandler(svc *chat.Service) *ThreadHandler {
	return &ThreadHandler{svc: svc}
}

// ListThreads handles GET /v0/owners/{ownerId}/threads.
func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	threads, err := h.svc.Threads(r.Context(), ownerID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if threads == nil {
		threads = []*model.ThreadInfo{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"threads": threads,
		"count":   len(threads),
	})
}

// History handles GET /v0/threads/{threadId}/messages. Unknown threads
// return an empty list.
func (h *ThreadHandler) History(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadId"]

	msgs, err := h.svc.History(r.Context(), threadID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if msgs == nil {
		msgs = []*model.Message{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"threadId": threadID,
		"label":    thread.Label(threadID),
		"messages": msgs,
		"count":    len(msgs),
	})
}

// EditMessage handles PATCH /v0/threads/{threadId}/messages/{messageId}.
func (h *ThreadHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	if err := h.svc.EditMessage(r.Context(), vars["threadId"], vars["messageId"], body.Content); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMessage handles DELETE /v0/threads/{threadId}/messages/{messageId}.
// Deleting an absent message still returns 204.
func (h *ThreadHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.svc.DeleteMessage(r.Context(), vars["threadId"], vars["messageId"]); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearThread handles POST /v0/threads/{threadId}/clear.
func (h *ThreadHandler) ClearThread(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["threadId"]

	if err := h.svc.ClearThread(r.Context(), threadID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
