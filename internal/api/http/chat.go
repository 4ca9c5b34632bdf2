package http

import (
	"encoding/json"
	"net/http"

	"github.com/ajshul/focusflow/internal/api/respond"
	"github.com/ajshul/focusflow/internal/chat"
	"github.com/ajshul/focusflow/internal/model"
)

// ChatHandler handles conversation turns.
type ChatHandler struct {
	svc *chat.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type turnBody struct {
	Profile *model.UserProfile `json:"profile"`
	Task    *model.Task        `json:"task,omitempty"`
	Tasks   []*model.Task      `json:"tasks,omitempty"`
	Text    string             `json:"text"`
}

func (b *turnBody) toRequest() chat.TurnRequest {
	return chat.TurnRequest{Profile: b.Profile, Task: b.Task, Tasks: b.Tasks, Text: b.Text}
}

// SendMessage handles POST /v0/chat. A whitespace-only text yields 204 with
// no stored messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body turnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	reply, err := h.svc.SendMessage(r.Context(), body.toRequest())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if reply == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"reply": reply})
}

// PreviewPrompt handles POST /v0/prompt/preview. It renders the system
// prompt the next turn would use without appending anything or invoking the
// model.
func (h *ChatHandler) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	var body turnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	prompt, err := h.svc.PreviewPrompt(r.Context(), body.toRequest())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"prompt": prompt})
}
