package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/staffclock/attendance-backend-go/internal/domain/auth"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

// Store implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, userID, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, to_timestamp($4))
	`

	_, err := q.Exec(ctx, query, uuid.New().String(), userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token = $1
		  AND revoked_at IS NULL
	`

	_, err := q.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// IsActive implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) IsActive(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM refresh_tokens
			WHERE token = $1
			  AND revoked_at IS NULL
			  AND expires_at > NOW()
		)
	`

	var active bool
	if err := q.QueryRow(ctx, query, token).Scan(&active); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return active, nil
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}
