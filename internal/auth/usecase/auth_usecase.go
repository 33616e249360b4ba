package usecase

import (
	"context"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/media"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	uploader media.Uploader
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, uploader media.Uploader, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		uploader: uploader,
		config:   cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest, avatar, coverImage *authdto.FileUpload) (*authdomain.User, error) {
	existing, err := u.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if avatar == nil {
		return nil, ErrAvatarRequired
	}

	avatarURL, err := u.uploader.Upload(ctx, "avatars", avatar.Filename, avatar.Reader, avatar.ContentType)
	if err != nil {
		return nil, err
	}

	coverImageURL := ""
	if coverImage != nil {
		coverImageURL, err = u.uploader.Upload(ctx, "covers", coverImage.Filename, coverImage.Reader, coverImage.ContentType)
		if err != nil {
			return nil, err
		}
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   hashedPassword,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, ErrMissingIdentifier
	}

	user, err := u.userRepo.FindByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.generateSession(user)
}

// RefreshToken exchanges a presented refresh token for a fresh pair. Rotation
// is single-use: the stored token is swapped atomically against the presented
// value, so a token that was already exchanged, or cleared by logout, fails
// with ErrTokenExpiredOrReused even before its own expiry.
func (u *authUsecase) RefreshToken(presented string) (*authdto.TokenResponse, error) {
	if presented == "" {
		return nil, ErrMissingRefreshToken
	}

	claims, err := u.parseToken(presented, u.config.RefreshTokenSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// A well-signed token for a missing user gets the same answer as a
		// forged one; existence must not leak.
		return nil, ErrInvalidToken
	}

	accessToken, refreshToken, err := u.issueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	swapped, err := u.userRepo.RotateRefreshToken(user.ID, presented, refreshToken)
	if err != nil {
		return nil, ErrTokenIssuance
	}
	if !swapped {
		return nil, ErrTokenExpiredOrReused
	}

	user.RefreshToken = refreshToken
	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) Logout(userID string) error {
	return u.userRepo.ClearRefreshToken(userID)
}

func (u *authUsecase) ChangePassword(userID string, req *authdto.ChangePasswordRequest) error {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !repository.CheckPasswordHash(req.OldPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(userID, hashedPassword)
}

func (u *authUsecase) CurrentUser(userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) UpdateAccount(userID string, req *authdto.UpdateAccountRequest) (*authdomain.User, error) {
	user, err := u.CurrentUser(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID string, file *authdto.FileUpload) (*authdomain.User, error) {
	if file == nil {
		return nil, ErrAvatarRequired
	}

	user, err := u.CurrentUser(userID)
	if err != nil {
		return nil, err
	}

	url, err := u.uploader.Upload(ctx, "avatars", file.Filename, file.Reader, file.ContentType)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateCoverImage(ctx context.Context, userID string, file *authdto.FileUpload) (*authdomain.User, error) {
	if file == nil {
		return nil, ErrCoverImageRequired
	}

	user, err := u.CurrentUser(userID)
	if err != nil {
		return nil, err
	}

	url, err := u.uploader.Upload(ctx, "covers", file.Filename, file.Reader, file.ContentType)
	if err != nil {
		return nil, err
	}

	user.CoverImage = url
	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) ValidateAccessToken(token string) (*authdomain.User, error) {
	claims, err := u.parseToken(token, u.config.AccessTokenSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// generateSession issues a token pair and binds the refresh token as the
// user's single active session. Whatever token was stored before stops
// working for refresh immediately, expired or not.
func (u *authUsecase) generateSession(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, refreshToken, err := u.issueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, ErrTokenIssuance
	}

	user.RefreshToken = refreshToken
	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// issueTokenPair signs a fresh access/refresh pair for userID with distinct
// secrets and expiries. Refresh tokens carry a unique jti claim; iat/exp alone
// have second granularity, which is not enough to tell two rotations apart.
func (u *authUsecase) issueTokenPair(userID string) (string, string, error) {
	accessToken, err := u.signToken(userID, u.config.AccessTokenSecret, u.config.AccessTokenExpiry, "")
	if err != nil {
		return "", "", ErrTokenIssuance
	}

	refreshToken, err := u.signToken(userID, u.config.RefreshTokenSecret, u.config.RefreshTokenExpiry, uuid.New().String())
	if err != nil {
		return "", "", ErrTokenIssuance
	}

	return accessToken, refreshToken, nil
}

func (u *authUsecase) signToken(userID, secret string, expiry time.Duration, tokenID string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (u *authUsecase) parseToken(tokenString, secret string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
