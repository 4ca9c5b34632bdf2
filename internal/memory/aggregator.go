// Package memory collects an owner's conversation history scattered across
// threads into one consolidated view for prompt composition.
package memory

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/store"
)

// Aggregator produces per-owner cross-thread views of the thread store.
type Aggregator struct {
	store store.Store
	log   zerolog.Logger
}

// NewAggregator wires an aggregator over the given store.
func NewAggregator(s store.Store, log zerolog.Logger) *Aggregator {
	return &Aggregator{store: s, log: log}
}

// AggregateAll returns every non-empty thread the owner has written to,
// mapped to its full message list in append order.
//
// Recall is best-effort: a thread whose read fails is logged and omitted so
// one bad thread cannot abort aggregation for the rest. Per-thread capping
// for prompt size happens downstream in the composer; callers that need the
// unbounded history (e.g. the memory management UI) use this result as-is.
func (a *Aggregator) AggregateAll(ctx context.Context, ownerID string) (map[string][]*model.Message, error) {
	threads, err := a.store.ListThreads(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]*model.Message, len(threads))
	for _, ti := range threads {
		msgs, err := a.store.ReadAll(ctx, ti.ThreadID)
		if err != nil {
			a.log.Warn().Err(err).Str("thread_id", ti.ThreadID).
				Msg("skipping unreadable thread during aggregation")
			continue
		}
		if len(msgs) == 0 {
			continue
		}
		out[ti.ThreadID] = msgs
	}
	return out, nil
}

// ThreadOrder returns the conversation's thread ids in a stable order: by
// first-message time, ties broken by thread id. Prompt composition iterates
// in this order so identical inputs render byte-identical prompts.
func ThreadOrder(conversations map[string][]*model.Message) []string {
	ids := make([]string, 0, len(conversations))
	for id := range conversations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := conversations[ids[i]], conversations[ids[j]]
		if len(a) == 0 || len(b) == 0 {
			return ids[i] < ids[j]
		}
		ta, tb := a[0].CreationTime, b[0].CreationTime
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return ids[i] < ids[j]
	})
	return ids
}
