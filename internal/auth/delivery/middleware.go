package delivery

import (
	"net/http"
	"strings"

	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller's identity from the accessToken cookie
// or, failing that, a Bearer Authorization header.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(accessTokenCookie)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				respondError(c, http.StatusUnauthorized, "unauthorized request")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(c, http.StatusUnauthorized, "invalid authorization header format")
				return
			}
			token = parts[1]
		}

		user, err := authUsecase.ValidateAccessToken(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid or expired access token")
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
