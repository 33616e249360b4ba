package usecase

import "errors"

// Failure modes of the session-token lifecycle. Delivery maps these onto HTTP
// statuses; ErrInvalidToken and ErrTokenExpiredOrReused are rendered with the
// same client-facing message so a caller probing tokens cannot tell a forged
// token from an already-rotated one.
var (
	ErrMissingIdentifier    = errors.New("username or email is required")
	ErrAvatarRequired       = errors.New("avatar file is required")
	ErrCoverImageRequired   = errors.New("cover image file is required")
	ErrUserExists           = errors.New("user with same username or email already exists")
	ErrUserNotFound         = errors.New("user does not exist")
	ErrInvalidCredentials   = errors.New("invalid user credentials")
	ErrMissingRefreshToken  = errors.New("unauthorized request")
	ErrInvalidToken         = errors.New("invalid refresh token")
	ErrTokenExpiredOrReused = errors.New("refresh token is expired or already used")
	ErrTokenIssuance        = errors.New("could not generate access and refresh token")
)
