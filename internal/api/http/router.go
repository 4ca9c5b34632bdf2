// Package http is the transport layer: thin gorilla/mux handlers that decode
// requests, call the conversation services, and write JSON.
package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajshul/focusflow/internal/chat"
	"github.com/ajshul/focusflow/internal/store"
)

// NewRouter builds the full route table over the given services.
func NewRouter(svc *chat.Service, st store.Store) *mux.Router {
	r := mux.NewRouter()

	chatH := NewChatHandler(svc)
	threadH := NewThreadHandler(svc)
	healthH := NewHealthHandler(st)

	r.HandleFunc("/v0/health", healthH.CheckHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/v0/chat", chatH.SendMessage).Methods("POST")
	r.HandleFunc("/v0/prompt/preview", chatH.PreviewPrompt).Methods("POST")

	r.HandleFunc("/v0/owners/{ownerId}/threads", threadH.ListThreads).Methods("GET")
	r.HandleFunc("/v0/threads/{threadId}/messages", threadH.History).Methods("GET")
	r.HandleFunc("/v0/threads/{threadId}/messages/{messageId}", threadH.EditMessage).Methods("PATCH")
	r.HandleFunc("/v0/threads/{threadId}/messages/{messageId}", threadH.DeleteMessage).Methods("DELETE")
	r.HandleFunc("/v0/threads/{threadId}/clear", threadH.ClearThread).Methods("POST")

	return r
}
