package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/store"
	"github.com/ajshul/focusflow/internal/thread"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	ownerID := "u-" + uuid.New().String()
	coachID := thread.ID(ownerID, thread.Coach())
	taskID := thread.ID(ownerID, thread.ForTask("t1"))

	// Unknown thread reads as empty, not as an error.
	if msgs, err := s.ReadAll(ctx, coachID); err != nil || len(msgs) != 0 {
		t.Fatalf("ReadAll unknown thread: n=%d err=%v", len(msgs), err)
	}

	// Append assigns id and timestamp.
	m1, err := s.Append(ctx, ownerID, coachID, &model.Message{Sender: model.SenderUser, Content: "hi"})
	if err != nil {
		t.Fatalf("Append m1: %v", err)
	}
	if m1.ID == "" || m1.CreationTime.IsZero() {
		t.Fatalf("Append m1: missing id or timestamp: %+v", m1)
	}
	m2, err := s.Append(ctx, ownerID, coachID, &model.Message{Sender: model.SenderAssistant, Content: "hello"})
	if err != nil {
		t.Fatalf("Append m2: %v", err)
	}

	// Reads preserve append order and are prefix-consistent.
	got, err := s.ReadAll(ctx, coachID)
	if err != nil || len(got) != 2 {
		t.Fatalf("ReadAll: n=%d err=%v", len(got), err)
	}
	if got[0].ID != m1.ID || got[1].ID != m2.ID {
		t.Fatalf("ReadAll order: got %s,%s want %s,%s", got[0].ID, got[1].ID, m1.ID, m2.ID)
	}

	// Second thread for the same owner; index registration is idempotent.
	if _, err := s.Append(ctx, ownerID, taskID, &model.Message{Sender: model.SenderUser, Content: "start"}); err != nil {
		t.Fatalf("Append task: %v", err)
	}
	if _, err := s.Append(ctx, ownerID, taskID, &model.Message{Sender: model.SenderAssistant, Content: "ok"}); err != nil {
		t.Fatalf("Append task 2: %v", err)
	}
	threads, err := s.ListThreads(ctx, ownerID)
	if err != nil || len(threads) != 2 {
		t.Fatalf("ListThreads: n=%d err=%v", len(threads), err)
	}
	labels := map[string]string{}
	for _, ti := range threads {
		labels[ti.ThreadID] = ti.PurposeLabel
	}
	if labels[coachID] != "Life Coach" || labels[taskID] != "Task t1" {
		t.Fatalf("ListThreads labels: %v", labels)
	}

	// Update stamps EditedTime; absent message is ErrNotFound.
	if err := s.Update(ctx, coachID, m1.ID, "hi there"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	after, _ := s.ReadAll(ctx, coachID)
	if after[0].Content != "hi there" || after[0].EditedTime == nil {
		t.Fatalf("Update not applied: %+v", after[0])
	}
	if err := s.Update(ctx, coachID, "missing", "x"); err != model.ErrNotFound {
		t.Fatalf("Update missing: want ErrNotFound got %v", err)
	}

	// Delete is idempotent.
	if err := s.Delete(ctx, coachID, m2.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, coachID, m2.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if left, _ := s.ReadAll(ctx, coachID); len(left) != 1 {
		t.Fatalf("after delete: n=%d", len(left))
	}

	// Clear empties contents but the thread identity survives in the index.
	if err := s.Clear(ctx, taskID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if left, _ := s.ReadAll(ctx, taskID); len(left) != 0 {
		t.Fatalf("after clear: n=%d", len(left))
	}
	threads, _ = s.ListThreads(ctx, ownerID)
	if len(threads) != 2 {
		t.Fatalf("ListThreads after clear: n=%d", len(threads))
	}

	// Appending after clear re-grows the same thread without duplicating
	// the index row.
	if _, err := s.Append(ctx, ownerID, taskID, &model.Message{Sender: model.SenderUser, Content: "again"}); err != nil {
		t.Fatalf("Append after clear: %v", err)
	}
	threads, _ = s.ListThreads(ctx, ownerID)
	if len(threads) != 2 {
		t.Fatalf("ListThreads after re-append: n=%d", len(threads))
	}

	if err := s.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

// RunMonotonicity verifies that successive ReadAll results are prefix
// extensions of each other under a stream of appends.
func RunMonotonicity(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	ownerID := "u-" + uuid.New().String()
	tid := thread.ID(ownerID, thread.Coach())

	var prev []string
	for i := 0; i < 20; i++ {
		if _, err := s.Append(ctx, ownerID, tid, &model.Message{Sender: model.SenderUser, Content: "m"}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		cur, err := s.ReadAll(ctx, tid)
		if err != nil {
			t.Fatalf("ReadAll %d: %v", i, err)
		}
		if len(cur) != len(prev)+1 {
			t.Fatalf("ReadAll %d: n=%d want %d", i, len(cur), len(prev)+1)
		}
		for j, id := range prev {
			if cur[j].ID != id {
				t.Fatalf("ReadAll %d: reordered at %d", i, j)
			}
		}
		prev = prev[:0]
		for _, m := range cur {
			prev = append(prev, m.ID)
		}
	}
}
