package repository

import (
	"context"
	"database/sql"

	"github.com/SaharBarak/BeenThere-sub000/internal/model"
	"github.com/SaharBarak/BeenThere-sub000/internal/pagination"
)

// MessageRepo provides access to the 'messages' table.  Delivery is
// pull-based: clients poll ListByMatch with a cursor.
type MessageRepo struct{ db *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Insert appends a message to a match conversation and populates the
// generated id and timestamp.
func (r *MessageRepo) Insert(ctx context.Context, m *model.Message) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (match_id, sender_id, body) VALUES (?,?,?)",
		m.MatchID, m.SenderID, m.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM messages WHERE id = ?", m.ID).Scan(&m.CreatedAt)
}

// ListByMatch returns a page of a conversation, newest first with the
// shared keyset boundary.
func (r *MessageRepo) ListByMatch(ctx context.Context, matchID uint64, before *pagination.Key, limit int) ([]model.Message, error) {
	q := `SELECT id, match_id, sender_id, body, created_at
	      FROM messages WHERE match_id = ?`
	args := []any{matchID}
	if before != nil {
		q += ` AND (created_at < ? OR (created_at = ? AND id < ?))`
		args = append(args, before.CreatedAt, before.CreatedAt, before.ID)
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Message, 0, limit)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
