package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/repository/base"
)

// SessionRepository stores login sessions: the durable side of the identity
// provider. A session maps an opaque token to a user id until it expires.
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{base.NewRepository(pool)}
}

// Insert persists a new session token.
func (r *SessionRepository) Insert(ctx context.Context, token, userID string, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.ExecAffected(ctx, query, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetUserID resolves a token to its user id. Returns "" for unknown or
// expired tokens.
func (r *SessionRepository) GetUserID(ctx context.Context, token string) (string, error) {
	query := `
		SELECT user_id
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`

	var userID string
	err := r.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if base.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

// Delete removes a session token. Deleting an unknown token is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`

	_, err := r.ExecAffected(ctx, query, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
