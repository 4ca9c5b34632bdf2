// Package resilient wraps a durable thread store with retry-and-fallback
// semantics: operations against the primary backend are retried with
// exponential backoff, and once retries are exhausted the store flips to a
// volatile in-memory substitute for the remainder of the session (sticky
// fallback) instead of re-probing the primary on every call.
package resilient

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/store"
)

// Option tunes a resilient Store.
type Option func(*Store)

// WithMaxAttempts sets how many times an operation runs against the primary
// before the fallback engages. Minimum 1.
func WithMaxAttempts(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithBackoffIntervals overrides the retry pacing (shortened in tests).
func WithBackoffIntervals(initial, max time.Duration) Option {
	return func(s *Store) {
		s.initialInterval = initial
		s.maxInterval = max
	}
}

// Store is a store.Store that degrades instead of failing.
type Store struct {
	primary  store.Store
	fallback store.Store
	log      zerolog.Logger

	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration

	degraded atomic.Bool
}

var _ store.Store = (*Store)(nil)

// New wraps primary with fallback. fallback is typically memory.New().
func New(primary, fallback store.Store, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		primary:         primary,
		fallback:        fallback,
		log:             log,
		maxAttempts:     3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Degraded reports whether the sticky fallback has engaged.
func (s *Store) Degraded() bool { return s.degraded.Load() }

// run executes op against the primary with retries, falling back on
// exhaustion. Domain errors (ErrNotFound, ErrValidation) and context
// cancellation are surfaced immediately and never engage the fallback.
func (s *Store) run(ctx context.Context, name string, op func(st store.Store) error) error {
	if s.degraded.Load() {
		return op(s.fallback)
	}

	attempt := func() error {
		err := op(s.primary)
		if err == nil {
			return nil
		}
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrValidation) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.initialInterval
	bo.MaxInterval = s.maxInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(s.maxAttempts-1)), ctx)

	err := backoff.Retry(attempt, policy)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrValidation) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Exhausted retries against the primary: engage the sticky fallback and
	// serve this operation (and all later ones) from it.
	if s.degraded.CompareAndSwap(false, true) {
		s.log.Warn().Err(err).Str("op", name).Int("attempts", s.maxAttempts).
			Msg("thread store unavailable, switching to in-memory fallback for this session")
	}
	return op(s.fallback)
}

func (s *Store) Append(ctx context.Context, ownerID, threadID string, msg *model.Message) (*model.Message, error) {
	var out *model.Message
	err := s.run(ctx, "append", func(st store.Store) error {
		var e error
		out, e = st.Append(ctx, ownerID, threadID, msg)
		return e
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ReadAll(ctx context.Context, threadID string) ([]*model.Message, error) {
	var out []*model.Message
	err := s.run(ctx, "read_all", func(st store.Store) error {
		var e error
		out, e = st.ReadAll(ctx, threadID)
		return e
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, threadID, messageID, newContent string) error {
	return s.run(ctx, "update", func(st store.Store) error {
		return st.Update(ctx, threadID, messageID, newContent)
	})
}

func (s *Store) Delete(ctx context.Context, threadID, messageID string) error {
	return s.run(ctx, "delete", func(st store.Store) error {
		return st.Delete(ctx, threadID, messageID)
	})
}

func (s *Store) Clear(ctx context.Context, threadID string) error {
	return s.run(ctx, "clear", func(st store.Store) error {
		return st.Clear(ctx, threadID)
	})
}

func (s *Store) ListThreads(ctx context.Context, ownerID string) ([]*model.ThreadInfo, error) {
	var out []*model.ThreadInfo
	err := s.run(ctx, "list_threads", func(st store.Store) error {
		var e error
		out, e = st.ListThreads(ctx, ownerID)
		return e
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if s.degraded.Load() {
		return s.fallback.HealthCheck(ctx)
	}
	return s.primary.HealthCheck(ctx)
}
