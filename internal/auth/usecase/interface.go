package usecase

import (
	"context"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
)

// AuthUsecase defines the account operations exposed to delivery.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest, avatar, coverImage *authdto.FileUpload) (*authdomain.User, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(presented string) (*authdto.TokenResponse, error)
	Logout(userID string) error
	ChangePassword(userID string, req *authdto.ChangePasswordRequest) error
	CurrentUser(userID string) (*authdomain.User, error)
	UpdateAccount(userID string, req *authdto.UpdateAccountRequest) (*authdomain.User, error)
	UpdateAvatar(ctx context.Context, userID string, file *authdto.FileUpload) (*authdomain.User, error)
	UpdateCoverImage(ctx context.Context, userID string, file *authdto.FileUpload) (*authdomain.User, error)
	ValidateAccessToken(token string) (*authdomain.User, error)
}
