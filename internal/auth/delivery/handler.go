package delivery

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	log         *slog.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		log:         log,
	}
}

// POST /api/v1/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	const op = "delivery.Register"
	log := h.log.With(slog.String("op", op))

	var req authdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "all fields are required")
		return
	}

	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, usecase.ErrAvatarRequired.Error())
		return
	}
	defer closeAvatar()

	coverImage, closeCover, err := formFile(c, "coverImage")
	if err == nil {
		defer closeCover()
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req, avatar, coverImage)
	if err != nil {
		log.Error("registration failed", slog.String("username", req.Username), slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	respond(c, http.StatusCreated, "User registered successfully", user)
}

// POST /api/v1/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	const op = "delivery.Login"
	log := h.log.With(slog.String("op", op))

	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		log.Error("login failed", slog.String("username", req.Username), slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	setAuthCookies(c, resp.AccessToken, resp.RefreshToken)
	respond(c, http.StatusOK, "User logged in successfully", resp)
}

// POST /api/v1/users/refresh-token
//
// The refresh token is read from the cookie first, then from the request body,
// the way browser and non-browser clients present it respectively.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	const op = "delivery.RefreshToken"
	log := h.log.With(slog.String("op", op))

	presented, _ := c.Cookie(refreshTokenCookie)
	if presented == "" {
		var req authdto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	resp, err := h.authUsecase.RefreshToken(presented)
	if err != nil {
		log.Error("refresh rejected", slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	setAuthCookies(c, resp.AccessToken, resp.RefreshToken)
	respond(c, http.StatusOK, "Access token refreshed", &authdto.TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
}

// POST /api/v1/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	const op = "delivery.Logout"
	log := h.log.With(slog.String("op", op))

	userID := c.GetString("userID")
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := h.authUsecase.Logout(userID); err != nil {
		log.Error("logout failed", slog.String("user_id", userID), slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	clearAuthCookies(c)
	log.Info("user logged out", slog.String("user_id", userID))
	respond(c, http.StatusOK, "User logged out", nil)
}

// POST /api/v1/users/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	const op = "delivery.ChangePassword"
	log := h.log.With(slog.String("op", op))

	var req authdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "old and new password are required")
		return
	}

	userID := c.GetString("userID")
	if err := h.authUsecase.ChangePassword(userID, &req); err != nil {
		log.Error("password change failed", slog.String("user_id", userID), slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	respond(c, http.StatusOK, "Password changed successfully", nil)
}

// GET /api/v1/users/current-user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.GetString("userID"))
	if err != nil {
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	respond(c, http.StatusOK, "Current user fetched successfully", user)
}

// PATCH /api/v1/users/update-account
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	const op = "delivery.UpdateAccount"
	log := h.log.With(slog.String("op", op))

	var req authdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := c.GetString("userID")
	user, err := h.authUsecase.UpdateAccount(userID, &req)
	if err != nil {
		log.Error("account update failed", slog.String("user_id", userID), slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	respond(c, http.StatusOK, "Account details updated successfully", user)
}

// PATCH /api/v1/users/avatar
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.authUsecase.UpdateAvatar)
}

// PATCH /api/v1/users/cover-image
func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.authUsecase.UpdateCoverImage)
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID string, file *authdto.FileUpload) (*authdomain.User, error)) {
	const op = "delivery.updateImage"
	log := h.log.With(slog.String("op", op), slog.String("field", field))

	file, closeFile, err := formFile(c, field)
	if err != nil {
		respondError(c, http.StatusBadRequest, field+" file is required")
		return
	}
	defer closeFile()

	userID := c.GetString("userID")
	user, err := update(c.Request.Context(), userID, file)
	if err != nil {
		log.Error("image update failed", slog.String("user_id", userID), slog.Any("error", err))
		status, msg := statusForError(err)
		respondError(c, status, msg)
		return
	}

	respond(c, http.StatusOK, "Image updated successfully", user)
}

func formFile(c *gin.Context, field string) (*authdto.FileUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &authdto.FileUpload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Reader:      f,
	}, func() { f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
