package model

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry in a conversation thread. Content is immutable once
// delivered to the model; the owner may still edit it afterwards for
// correction purposes, which sets EditedTime.
type Message struct {
	ID           string     `json:"id"`
	Sender       Sender     `json:"sender"`
	Content      string     `json:"content"`
	CreationTime time.Time  `json:"creationTime"`
	EditedTime   *time.Time `json:"editedTime,omitempty"`

	// Fallback marks a synthesized error reply that never came from the
	// model. Fallback messages are persisted for conversational continuity
	// but excluded from prompt history and the prior-message window.
	Fallback bool `json:"fallback,omitempty"`
}

// UserProfile is read-only input to prompt composition. Optional fields are
// empty strings and are skipped when rendering.
type UserProfile struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Occupation         string            `json:"occupation,omitempty"`
	WorkStyle          string            `json:"workStyle,omitempty"`
	CommunicationStyle string            `json:"communicationStyle,omitempty"`
	Preferences        map[string]string `json:"preferences,omitempty"`
}

// Task is read-only input to prompt composition when a turn targets a
// task-specific thread.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category,omitempty"`
	Priority  string `json:"priority,omitempty"`
	DueTime   string `json:"dueTime,omitempty"`
	Context   string `json:"context,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// ThreadInfo is one row of the owner→thread index maintained on every append.
type ThreadInfo struct {
	ThreadID     string `json:"threadId"`
	OwnerID      string `json:"ownerId"`
	PurposeLabel string `json:"purposeLabel"`
}
