package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RefreshTokenRepository persists issued refresh tokens so revocation
// survives restarts.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, token string, expiresAt int64) error
	Revoke(ctx context.Context, token string) error
	IsActive(ctx context.Context, token string) (bool, error)
}
