// Package store defines the thread-store contract consumed by the memory
// aggregator and the conversation turn handler. Implementations live under
// internal/store/<driver>/ (sqlite, memory) and internal/store/resilient
// wraps one of them with retry and sticky fallback.
package store

import (
	"context"

	"github.com/ajshul/focusflow/internal/model"
)

// Store exposes persistence operations over conversation threads.
//
// Threads are created implicitly on first Append; Clear empties a thread's
// contents but never removes its identity. Append must also register
// (ownerID, threadID) in the owner index atomically with the message write;
// registering the same pair twice is a no-op.
type Store interface {
	// Append adds msg to the end of threadID, assigning ID and CreationTime
	// when unset, and returns the stored message.
	Append(ctx context.Context, ownerID, threadID string, msg *model.Message) (*model.Message, error)

	// ReadAll returns the thread's messages in append order. Unknown or
	// empty threads yield an empty slice, never model.ErrNotFound.
	ReadAll(ctx context.Context, threadID string) ([]*model.Message, error)

	// Update replaces a message's content and stamps EditedTime. Returns
	// model.ErrNotFound if the message is absent.
	Update(ctx context.Context, threadID, messageID, newContent string) error

	// Delete removes one message. Deleting an absent message is not an error.
	Delete(ctx context.Context, threadID, messageID string) error

	// Clear empties the thread's message list.
	Clear(ctx context.Context, threadID string) error

	// ListThreads enumerates the owner index.
	ListThreads(ctx context.Context, ownerID string) ([]*model.ThreadInfo, error)

	HealthCheck(ctx context.Context) error
}
