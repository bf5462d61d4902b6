package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/codebugger/internal/database"
)

// SQLStore keeps history in the conversation_exchanges table
type SQLStore struct {
	db  *database.DB
	now func() time.Time
}

// NewSQLStore creates a history store over an opened database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Append(ctx context.Context, sessionID, question, answer string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrHistoryStore, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO conversation_exchanges (session_id, question, answer, created_at) VALUES (?, ?, ?, ?)`),
		sessionID, question, answer, database.FormatTime(s.now()))
	if err != nil {
		return fmt.Errorf("%w: failed to insert exchange: %w", ErrHistoryStore, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit exchange: %w", ErrHistoryStore, err)
	}
	return nil
}

func (s *SQLStore) ReadAll(ctx context.Context, sessionID string) ([]Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		s.db.Rebind(`SELECT question, answer, created_at FROM conversation_exchanges WHERE session_id = ? ORDER BY id`),
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query history: %w", ErrHistoryStore, err)
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var ex Exchange
		var createdAt string
		if err := rows.Scan(&ex.Question, &ex.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan exchange: %w", ErrHistoryStore, err)
		}
		if ex.CreatedAt, err = database.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHistoryStore, err)
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read history: %w", ErrHistoryStore, err)
	}
	return out, nil
}
