// Package sqlite implements the durable thread store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/store"
	"github.com/ajshul/focusflow/internal/thread"
)

// Store persists threads in a local SQLite database.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens (or creates) the database at path and ensures the schema.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(ctx, db)
}

// NewWithDB wires an existing connection (used by tests and the factory).
func NewWithDB(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection (local-only use case).
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Append(ctx context.Context, ownerID, threadID string, msg *model.Message) (*model.Message, error) {
	stored := *msg
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreationTime.IsZero() {
		stored.CreationTime = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO Messages (ThreadId, MessageId, Sender, Content, Fallback, CreationTime) VALUES (?,?,?,?,?,?)`,
		threadID, stored.ID, string(stored.Sender), stored.Content, boolToInt(stored.Fallback), stored.CreationTime); err != nil {
		return nil, err
	}
	// Owner index is maintained in the same transaction as the append.
	if ownerID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO Threads (OwnerId, ThreadId, PurposeLabel, CreationTime) VALUES (?,?,?,?)`,
			ownerID, threadID, thread.Label(threadID), stored.CreationTime); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Store) ReadAll(ctx context.Context, threadID string) ([]*model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT MessageId, Sender, Content, Fallback, CreationTime, EditedTime FROM Messages WHERE ThreadId = ? ORDER BY Seq ASC`,
		threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Message{}
	for rows.Next() {
		var (
			m        model.Message
			sender   string
			fallback int
			edited   sql.NullTime
		)
		if err := rows.Scan(&m.ID, &sender, &m.Content, &fallback, &m.CreationTime, &edited); err != nil {
			return nil, err
		}
		m.Sender = model.Sender(sender)
		m.Fallback = fallback != 0
		if edited.Valid {
			t := edited.Time
			m.EditedTime = &t
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, threadID, messageID, newContent string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Messages SET Content = ?, EditedTime = ? WHERE ThreadId = ? AND MessageId = ?`,
		newContent, time.Now().UTC(), threadID, messageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, threadID, messageID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM Messages WHERE ThreadId = ? AND MessageId = ?`, threadID, messageID)
	return err
}

func (s *Store) Clear(ctx context.Context, threadID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM Messages WHERE ThreadId = ?`, threadID)
	return err
}

func (s *Store) ListThreads(ctx context.Context, ownerID string) ([]*model.ThreadInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ThreadId, PurposeLabel FROM Threads WHERE OwnerId = ? ORDER BY CreationTime ASC, ThreadId ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.ThreadInfo{}
	for rows.Next() {
		ti := model.ThreadInfo{OwnerID: ownerID}
		if err := rows.Scan(&ti.ThreadID, &ti.PurposeLabel); err != nil {
			return nil, err
		}
		out = append(out, &ti)
	}
	return out, rows.Err()
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
