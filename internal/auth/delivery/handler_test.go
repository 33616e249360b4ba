package delivery

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase overrides only what each test needs; calling anything else
// panics through the nil embedded interface, which is a test bug anyway.
type stubAuthUsecase struct {
	usecase.AuthUsecase

	loginResp   *authdto.TokenResponse
	loginErr    error
	refreshResp *authdto.TokenResponse
	refreshErr  error
	logoutErr   error
	validated   *authdomain.User
	validateErr error

	refreshedWith string
	loggedOut     string
}

func (s *stubAuthUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthUsecase) RefreshToken(presented string) (*authdto.TokenResponse, error) {
	s.refreshedWith = presented
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthUsecase) Logout(userID string) error {
	s.loggedOut = userID
	return s.logoutErr
}

func (s *stubAuthUsecase) ValidateAccessToken(token string) (*authdomain.User, error) {
	return s.validated, s.validateErr
}

func newTestRouter(uc usecase.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.RefreshToken)
	r.POST("/logout", AuthMiddleware(uc), h.Logout)
	return r
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type errEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func TestLogin_SetsSecureCookies(t *testing.T) {
	stub := &stubAuthUsecase{
		loginResp: &authdto.TokenResponse{
			AccessToken:  "access-abc",
			RefreshToken: "refresh-xyz",
			User:         &authdomain.User{ID: "u1", Username: "alice"},
		},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"Secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	resp := w.Result()
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		cookie := findCookie(t, resp, name)
		require.NotNil(t, cookie, "cookie %s not set", name)
		assert.True(t, cookie.HttpOnly, "cookie %s must be HttpOnly", name)
		assert.True(t, cookie.Secure, "cookie %s must be Secure", name)
	}
	assert.Equal(t, "access-abc", findCookie(t, resp, accessTokenCookie).Value)
	assert.Equal(t, "refresh-xyz", findCookie(t, resp, refreshTokenCookie).Value)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
			User         struct {
				Username string `json:"username"`
				Password string `json:"password"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "access-abc", body.Data.AccessToken)
	assert.Equal(t, "alice", body.Data.User.Username)
	assert.Empty(t, body.Data.User.Password, "password hash must never be serialized")
}

func TestLogin_WrongPassword(t *testing.T) {
	stub := &stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies(), "no cookies on failed login")

	var body errEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Errors)
	assert.Empty(t, body.Errors)
}

func TestLogin_UnknownUserIs404(t *testing.T) {
	stub := &stubAuthUsecase{loginErr: usecase.ErrUserNotFound}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ghost@x.com","password":"Secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefresh_ReadsCookieFirst(t *testing.T) {
	stub := &stubAuthUsecase{
		refreshResp: &authdto.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "refresh-1"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh-1", stub.refreshedWith)
	assert.Equal(t, "refresh-2", findCookie(t, w.Result(), refreshTokenCookie).Value)
}

func TestRefresh_ReadsBodyWithoutCookie(t *testing.T) {
	stub := &stubAuthUsecase{
		refreshResp: &authdto.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(`{"refreshToken":"refresh-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh-1", stub.refreshedWith)
}

func TestRefresh_AbsentToken(t *testing.T) {
	stub := &stubAuthUsecase{refreshErr: usecase.ErrMissingRefreshToken}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body errEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized request", body.Message)
}

// Reused and forged tokens must be indistinguishable to the client.
func TestRefresh_ReuseAndInvalidLookAlike(t *testing.T) {
	bodies := make([]string, 0, 2)
	for _, failure := range []error{usecase.ErrTokenExpiredOrReused, usecase.ErrInvalidToken} {
		stub := &stubAuthUsecase{refreshErr: failure}
		r := newTestRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "stale"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestLogout_ClearsCookies(t *testing.T) {
	stub := &stubAuthUsecase{validated: &authdomain.User{ID: "u1"}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "access-abc"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", stub.loggedOut)

	resp := w.Result()
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		cookie := findCookie(t, resp, name)
		require.NotNil(t, cookie, "clear must rewrite cookie %s", name)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge, "cookie %s must be expired", name)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
	}
}

func TestLogout_RequiresAuthentication(t *testing.T) {
	stub := &stubAuthUsecase{validateErr: usecase.ErrInvalidToken}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, stub.loggedOut)
}
