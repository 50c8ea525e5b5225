package chatlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]Message, error)
	Append(ctx context.Context, m Message) error
}

// PostgresRepo reads/appends the chat-history log.
//
// NOTE: assumes table chat_messages (session_id, payload jsonb, created_at).
// The automation writes most rows; the dashboard appends on manual takeover.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	const q = `
SELECT id, session_id, payload, created_at
FROM chat_messages
WHERE session_id = $1
ORDER BY id
`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		var payload []byte
		if err := rows.Scan(&m.ID, &m.SessionID, &payload, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Payload = json.RawMessage(payload)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Append(ctx context.Context, m Message) error {
	const q = `
INSERT INTO chat_messages (session_id, payload, created_at)
VALUES ($1, $2, $3)
`
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, m.SessionID, []byte(m.Payload), created)
	return err
}

// MemoryRepo is a simple in-memory repository for tests.

type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	Rows   []Message
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, 0)
	for _, m := range r.Rows {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Append(ctx context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.Rows = append(r.Rows, m)
	return nil
}
