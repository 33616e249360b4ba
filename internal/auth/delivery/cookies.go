package delivery

import "github.com/gin-gonic/gin"

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// setAuthCookies attaches both tokens as HttpOnly, Secure cookies. No cookie
// max-age is set: the exp claim inside each token is the only expiry, the
// cookie is just the carrier.
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(accessTokenCookie, accessToken, 0, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, refreshToken, 0, "/", "", true, true)
}

// clearAuthCookies removes both cookies using the exact flag set they were
// written with; clients drop a cookie only when the flags match.
func clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", true, true)
}
