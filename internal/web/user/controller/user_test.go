package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/service"
	"github.com/aahabhisheksingh/studyhub-api/library/auth"
	"github.com/aahabhisheksingh/studyhub-api/library/jwt"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

func newTestController(t *testing.T, ownerEmail string) *Users {
	t.Helper()
	require.NoError(t, auth.Initialize([]byte("test-secret-0123456789abcdef0123")))

	return New(service.New(
		log.Logger.Named("user_ctl_test"), nil, nil, nil, ownerEmail))
}

// TestFinishSessionRoundTrip verifies a login response carries a token
// the auth middleware accepts back, plus the session cookie.
func TestFinishSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := newTestController(t, "alice@example.com")

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)

	usr := model.NewUser()
	usr.Account = "alice@example.com"
	usr.DisplayName = "Alice"
	u.finishSession(ctx, usr)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"isOwner":true`)

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token, "session cookie not set")

	// the admin gate reads the bearer token back through the same Auth
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	ctx2.Request = req

	uc := new(jwt.UserClaims)
	require.NoError(t, auth.Instance.GetUserClaims(ctx2, uc))
	require.Equal(t, "alice@example.com", uc.Account)
	require.Equal(t, "Alice", uc.DisplayName)
}

// TestLogoutExpiresCookie verifies logout rewrites the session cookie
// with an expiry in the past.
func TestLogoutExpiresCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := newTestController(t, "")

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)

	u.Logout(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			cleared = c.Value == "" && c.MaxAge < 0
		}
	}
	require.True(t, cleared, "session cookie not cleared")
}
