package sqlite

import (
	"context"
	"database/sql"
)

// Seq gives a total append order per thread that is independent of wall-clock
// resolution. The Threads table is the owner→thread index; the composite
// primary key makes registration idempotent via INSERT OR IGNORE.
const schema = `
CREATE TABLE IF NOT EXISTS Messages (
    Seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    ThreadId     TEXT NOT NULL,
    MessageId    TEXT NOT NULL,
    Sender       TEXT NOT NULL,
    Content      TEXT NOT NULL,
    Fallback     INTEGER NOT NULL DEFAULT 0,
    CreationTime TIMESTAMP NOT NULL,
    EditedTime   TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS MessagesByThreadMessage ON Messages(ThreadId, MessageId);
CREATE INDEX IF NOT EXISTS MessagesByThread ON Messages(ThreadId, Seq);

CREATE TABLE IF NOT EXISTS Threads (
    OwnerId      TEXT NOT NULL,
    ThreadId     TEXT NOT NULL,
    PurposeLabel TEXT NOT NULL,
    CreationTime TIMESTAMP NOT NULL,
    PRIMARY KEY (OwnerId, ThreadId)
);
`

// EnsureSchema creates the message and owner-index tables if absent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
