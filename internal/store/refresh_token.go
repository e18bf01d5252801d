package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

func (s *Postgres) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES ($1,$2,$3,$4,$5)`,
		id, userID, tokenHash, expiresAt, time.Now().UTC(),
	)
	return id, pgErr(err)
}

func (s *Postgres) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	rt := &RefreshToken{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked, replaced_by, created_at
		 FROM refresh_tokens WHERE token_hash = $1`, tokenHash,
	).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.ReplacedBy, &rt.CreatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return rt, nil
}

// rotate: revoke old token, create new one, link them. The old row is only
// revoked if it still is live, so two racing refreshes cannot both succeed.
func (s *Postgres) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return pgErr(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true, replaced_by = $1 WHERE id = $2 AND revoked = false`,
		newID, oldID,
	)
	if err != nil {
		return pgErr(err)
	}
	if err := expectRows(tag.RowsAffected(), 1); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES ($1,$2,$3,$4,$5)`,
		newID, userID, newHash, newExpiry, time.Now().UTC(),
	)
	if err != nil {
		return pgErr(err)
	}

	return pgErr(tx.Commit(ctx))
}

// revoke all tokens for a user (on logout or suspected theft)
func (s *Postgres) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND revoked = false`,
		userID,
	)
	return pgErr(err)
}
