package delivery

import (
	"errors"
	"net/http"

	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type apiError struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, apiError{Success: false, Message: message, Errors: []string{}})
}

// statusForError maps usecase failures onto the HTTP contract. Invalid and
// already-rotated refresh tokens get one shared message on purpose.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrMissingIdentifier),
		errors.Is(err, usecase.ErrAvatarRequired),
		errors.Is(err, usecase.ErrCoverImageRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrMissingRefreshToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenExpiredOrReused):
		return http.StatusUnauthorized, "invalid or expired refresh token"
	case errors.Is(err, usecase.ErrTokenIssuance):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
