package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
	"github.com/ericfisherdev/sessionpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port interface.
// The token and identity live in two rows of session_slots and are always
// written and removed in a single transaction.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Get returns the stored session, or (nil, nil) when no token is stored.
func (r *SessionRepo) Get(ctx context.Context) (*model.Session, error) {
	const query = `SELECT key, value FROM session_slots WHERE key IN (?, ?)`

	rows, err := r.db.Reader.QueryContext(ctx, query, model.SlotAuthToken, model.SlotIdentity)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer rows.Close()

	var s model.Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session slot: %w", err)
		}
		switch key {
		case model.SlotAuthToken:
			s.Token = value
		case model.SlotIdentity:
			s.Identity = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session slots: %w", err)
	}

	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

// Set stores the token first and the identity second, in one transaction.
func (r *SessionRepo) Set(ctx context.Context, token, identity string) error {
	const query = `
		INSERT INTO session_slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, model.SlotAuthToken, token); err != nil {
		return fmt.Errorf("set %s: %w", model.SlotAuthToken, err)
	}
	if _, err := tx.ExecContext(ctx, query, model.SlotIdentity, identity); err != nil {
		return fmt.Errorf("set %s: %w", model.SlotIdentity, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set session: %w", err)
	}
	return nil
}

// Clear removes the token first and the identity second, in one transaction.
func (r *SessionRepo) Clear(ctx context.Context) error {
	const query = `DELETE FROM session_slots WHERE key = ?`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, slot := range []string{model.SlotAuthToken, model.SlotIdentity} {
		if _, err := tx.ExecContext(ctx, query, slot); err != nil {
			return fmt.Errorf("clear %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear session: %w", err)
	}
	return nil
}
