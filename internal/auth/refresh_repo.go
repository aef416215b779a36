package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshRepo persists hashed refresh tokens. Raw tokens never hit the
// database; callers hash with HashToken first.
type RefreshRepo struct {
	db *pgxpool.Pool
}

func NewRefreshRepo(db *pgxpool.Pool) *RefreshRepo {
	return &RefreshRepo{db: db}
}

func (r *RefreshRepo) Store(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1,$2,$3)
	`, userID, tokenHash, expiresAt)
	return err
}

func (r *RefreshRepo) IsValid(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM refresh_tokens
			WHERE user_id=$1 AND token_hash=$2
			  AND revoked_at IS NULL
			  AND expires_at > now()
		)
	`, userID, tokenHash).Scan(&ok)
	return ok, err
}

func (r *RefreshRepo) Revoke(ctx context.Context, userID int64, tokenHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at=now()
		WHERE user_id=$1 AND token_hash=$2 AND revoked_at IS NULL
	`, userID, tokenHash)
	return err
}

// Rotate revokes oldHash and stores newHash in a single transaction, so a
// crash between the two never leaves the user without a valid token.
func (r *RefreshRepo) Rotate(ctx context.Context, userID int64, oldHash, newHash string, expiresAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at=now()
		WHERE user_id=$1 AND token_hash=$2 AND revoked_at IS NULL
	`, userID, oldHash); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1,$2,$3)
	`, userID, newHash, expiresAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
