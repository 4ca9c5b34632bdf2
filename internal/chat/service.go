// Package chat orchestrates one conversation turn: persist the user's
// message, assemble the cross-thread prompt, invoke the model, and persist
// the reply.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ajshul/focusflow/internal/llm"
	"github.com/ajshul/focusflow/internal/memory"
	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/prompt"
	"github.com/ajshul/focusflow/internal/store"
	"github.com/ajshul/focusflow/internal/thread"
)

// FallbackReply is the fixed user-visible reply synthesized when the model
// call fails. It is persisted with the Fallback tag so later prompt
// assembly can tell it apart from genuine model output.
const FallbackReply = "I'm sorry, I encountered an error processing your request. Please try again."

// TurnRequest carries the inputs for one conversation turn. When Task is
// set the turn targets that task's thread; otherwise it targets the coach
// thread and Tasks feeds the coach overview.
type TurnRequest struct {
	Profile *model.UserProfile
	Task    *model.Task
	Tasks   []*model.Task
	Text    string
}

func (r *TurnRequest) purpose() thread.Purpose {
	if r.Task != nil {
		return thread.ForTask(r.Task.ID)
	}
	return thread.Coach()
}

// Service is the conversation turn handler.
type Service struct {
	store    store.Store
	agg      *memory.Aggregator
	composer *prompt.Composer
	invoker  llm.Invoker
	log      zerolog.Logger
	locks    *keyedMutex
}

// NewService wires the turn handler.
func NewService(st store.Store, agg *memory.Aggregator, composer *prompt.Composer, invoker llm.Invoker, log zerolog.Logger) *Service {
	return &Service{
		store:    st,
		agg:      agg,
		composer: composer,
		invoker:  invoker,
		log:      log,
		locks:    newKeyedMutex(),
	}
}

// SendMessage runs one turn and returns the assistant's reply. Whitespace-only
// input is a no-op returning (nil, nil): nothing is appended and the model is
// not called.
//
// The user's message is committed to the store before the model is invoked,
// and that append is never rolled back on model failure. Turns for the same
// thread are serialized; turns for different threads proceed in parallel.
func (s *Service) SendMessage(ctx context.Context, req TurnRequest) (*model.Message, error) {
	if req.Profile == nil || req.Profile.ID == "" {
		return nil, fmt.Errorf("%w: missing profile", model.ErrValidation)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		turnsTotal.WithLabelValues("noop").Inc()
		return nil, nil
	}

	threadID := thread.ID(req.Profile.ID, req.purpose())
	mu := s.locks.get(threadID)
	mu.Lock()
	defer mu.Unlock()

	prior, err := s.store.ReadAll(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("read thread %s: %w", threadID, err)
	}

	if _, err := s.store.Append(ctx, req.Profile.ID, threadID, &model.Message{
		Sender:  model.SenderUser,
		Content: text,
	}); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	systemPrompt := s.composePrompt(ctx, req)
	window := s.composer.PriorWindow(prior)

	replyText, err := s.invoker.Invoke(ctx, systemPrompt, window, text)
	fallback := false
	if err != nil {
		modelFailures.Inc()
		s.log.Warn().Err(err).Str("thread_id", threadID).Msg("model call failed, synthesizing fallback reply")
		replyText = FallbackReply
		fallback = true
	}

	reply, err := s.store.Append(ctx, req.Profile.ID, threadID, &model.Message{
		Sender:   model.SenderAssistant,
		Content:  replyText,
		Fallback: fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	if fallback {
		turnsTotal.WithLabelValues("failed").Inc()
	} else {
		turnsTotal.WithLabelValues("delivered").Inc()
	}
	return reply, nil
}

// composePrompt aggregates all threads and renders the purpose-specific
// system prompt. Aggregation failure degrades to an empty history rather
// than aborting the turn.
func (s *Service) composePrompt(ctx context.Context, req TurnRequest) string {
	conversations, err := s.agg.AggregateAll(ctx, req.Profile.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", req.Profile.ID).Msg("aggregation failed, composing prompt without history")
		conversations = nil
	}
	if req.Task != nil {
		return s.composer.ComposeTask(req.Profile, req.Task, conversations)
	}
	return s.composer.ComposeCoach(req.Profile, req.Tasks, conversations)
}

// PreviewPrompt renders the system prompt a turn would use, for the memory
// settings/debug surface. It shares composePrompt with SendMessage so the
// two can never diverge in how they summarize history.
func (s *Service) PreviewPrompt(ctx context.Context, req TurnRequest) (string, error) {
	if req.Profile == nil || req.Profile.ID == "" {
		return "", fmt.Errorf("%w: missing profile", model.ErrValidation)
	}
	return s.composePrompt(ctx, req), nil
}

// History returns a thread's full message list.
func (s *Service) History(ctx context.Context, threadID string) ([]*model.Message, error) {
	return s.store.ReadAll(ctx, threadID)
}

// Threads enumerates an owner's threads.
func (s *Service) Threads(ctx context.Context, ownerID string) ([]*model.ThreadInfo, error) {
	return s.store.ListThreads(ctx, ownerID)
}

// EditMessage updates a stored message's content for post-hoc correction.
// Returns model.ErrNotFound when the message is absent.
func (s *Service) EditMessage(ctx context.Context, threadID, messageID, newContent string) error {
	if strings.TrimSpace(newContent) == "" {
		return fmt.Errorf("%w: empty content", model.ErrValidation)
	}
	return s.store.Update(ctx, threadID, messageID, newContent)
}

// DeleteMessage removes one message; deleting an absent message is a no-op.
func (s *Service) DeleteMessage(ctx context.Context, threadID, messageID string) error {
	return s.store.Delete(ctx, threadID, messageID)
}

// ClearThread empties a thread's contents. The thread identity survives.
func (s *Service) ClearThread(ctx context.Context, threadID string) error {
	return s.store.Clear(ctx, threadID)
}
