package repository

import (
	authdomain "vidtube-backend/internal/auth/domain"
)

// UserRepository is the persistence boundary of the account service. The
// refresh-token methods operate on the single refresh_token column only; a
// token rotation must never touch or validate unrelated user fields.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByUsernameOrEmail(username, email string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	UpdatePassword(userID, passwordHash string) error

	// UpdateRefreshToken binds token as the user's only active refresh
	// token, replacing any prior value.
	UpdateRefreshToken(userID, token string) error
	// ClearRefreshToken drops the user's active refresh token (logout).
	ClearRefreshToken(userID string) error
	// RotateRefreshToken swaps the stored token for next only if it still
	// equals presented, and reports whether the swap happened.
	RotateRefreshToken(userID, presented, next string) (bool, error)
}
