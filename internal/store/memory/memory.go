// Package memory provides a volatile, in-process thread store. It backs unit
// tests and serves as the sticky fallback when the durable backend is
// unavailable.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/store"
	"github.com/ajshul/focusflow/internal/thread"
)

// Store keeps all threads in process memory. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]*model.Message
	// owner → thread ids in registration order; the nested map gives
	// idempotent registration.
	index map[string][]string
	seen  map[string]map[string]bool
}

var _ store.Store = (*Store)(nil)

// New returns an empty volatile store.
func New() *Store {
	return &Store{
		messages: make(map[string][]*model.Message),
		index:    make(map[string][]string),
		seen:     make(map[string]map[string]bool),
	}
}

func (s *Store) Append(ctx context.Context, ownerID, threadID string, msg *model.Message) (*model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *msg
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreationTime.IsZero() {
		stored.CreationTime = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[threadID] = append(s.messages[threadID], &stored)
	if ownerID != "" {
		if s.seen[ownerID] == nil {
			s.seen[ownerID] = make(map[string]bool)
		}
		if !s.seen[ownerID][threadID] {
			s.seen[ownerID][threadID] = true
			s.index[ownerID] = append(s.index[ownerID], threadID)
		}
	}
	out := stored
	return &out, nil
}

func (s *Store) ReadAll(ctx context.Context, threadID string) ([]*model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[threadID]
	out := make([]*model.Message, len(msgs))
	for i, m := range msgs {
		c := *m
		out[i] = &c
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, threadID, messageID, newContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages[threadID] {
		if m.ID == messageID {
			now := time.Now().UTC()
			m.Content = newContent
			m.EditedTime = &now
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, threadID, messageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[threadID]
	for i, m := range msgs {
		if m.ID == messageID {
			s.messages[threadID] = append(msgs[:i:i], msgs[i+1:]...)
			return nil
		}
	}
	// Absent message: deletion is idempotent.
	return nil
}

func (s *Store) Clear(ctx context.Context, threadID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[threadID] = nil
	return nil
}

func (s *Store) ListThreads(ctx context.Context, ownerID string) ([]*model.ThreadInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.index[ownerID]
	out := make([]*model.ThreadInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, &model.ThreadInfo{
			ThreadID:     id,
			OwnerID:      ownerID,
			PurposeLabel: thread.Label(id),
		})
	}
	return out, nil
}

func (s *Store) HealthCheck(ctx context.Context) error { return ctx.Err() }
