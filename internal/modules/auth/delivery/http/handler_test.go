package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/auth/dto"
	authService "monkid.com/backoffice/internal/modules/auth/service"
	"monkid.com/backoffice/pkg/apperror"
)

type stubAuth struct {
	result *authService.LoginResult
	err    error
}

func (s *stubAuth) Login(ctx context.Context, input dto.LoginInput) (*authService.LoginResult, error) {
	return s.result, s.err
}

func (s *stubAuth) GoogleLoginURL(state string) (string, error) {
	return "https://accounts.example.com/auth?state=" + state, nil
}

func (s *stubAuth) CompleteGoogleLogin(ctx context.Context, code string) (*authService.LoginResult, error) {
	return s.result, s.err
}

func (s *stubAuth) Logout(ctx context.Context, refreshToken, sessionKey string) error {
	return s.err
}

func newRouter(auth authService.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(auth, nil, nil, CookieConfig{
		SessionCookieName: "sessionid",
		FrontendURL:       "http://front.example.com",
		SessionTTL:        time.Hour,
	})
	router := gin.New()
	router.GET("/auth/google/login/", h.GoogleLogin)
	router.GET("/oauth/complete/google-oauth2/", h.GoogleCallback)
	return router
}

func cookiesByName(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, cookie := range w.Result().Cookies() {
		out[cookie.Name] = cookie
	}
	return out
}

func TestGoogleLoginSetsStateAndRedirects(t *testing.T) {
	router := newRouter(&stubAuth{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google/login/", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	state := cookiesByName(w)[authService.CookieOAuthState]
	require.NotNil(t, state)
	assert.True(t, state.HttpOnly)
	assert.Contains(t, w.Header().Get("Location"), "state="+state.Value)
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	router := newRouter(&stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/oauth/complete/google-oauth2/?state=b&code=c", nil)
	req.AddCookie(&http.Cookie{Name: authService.CookieOAuthState, Value: "a"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.example.com/login?error=invalid_state", w.Header().Get("Location"))
}

func TestGoogleCallbackHidesInternalErrors(t *testing.T) {
	router := newRouter(&stubAuth{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/oauth/complete/google-oauth2/?state=a&code=c", nil)
	req.AddCookie(&http.Cookie{Name: authService.CookieOAuthState, Value: "a"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.example.com/login?error=login_failed", w.Header().Get("Location"))
}

func TestGoogleCallbackRedirectsWithShortErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"provider rejected", fmt.Errorf("google exchange failed: %w", apperror.ErrUnauthorized), "access_denied"},
		{"account disabled", fmt.Errorf("sso@example.com: %w", apperror.ErrAccountDisabled), "account_disabled"},
		{"not configured", apperror.New(http.StatusServiceUnavailable, "google login is not configured", nil), "provider_unavailable"},
		{"internal", errors.New("connection refused"), "login_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&stubAuth{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/oauth/complete/google-oauth2/?state=a&code=c", nil)
			req.AddCookie(&http.Cookie{Name: authService.CookieOAuthState, Value: "a"})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "http://front.example.com/login?error="+tt.want, w.Header().Get("Location"))
		})
	}
}

func TestGoogleCallbackSetsSessionAndAuthCookies(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "sso@example.com", IsActive: true}
	now := time.Now()
	router := newRouter(&stubAuth{result: &authService.LoginResult{
		User: user,
		Tokens: &authService.TokenPair{
			Access:           "access-token",
			Refresh:          "refresh-token",
			AccessExpiresAt:  now.Add(time.Minute),
			RefreshExpiresAt: now.Add(time.Hour),
		},
		SessionKey: "abc123",
		SessionExp: now.Add(time.Hour),
	}})

	req := httptest.NewRequest(http.MethodGet, "/oauth/complete/google-oauth2/?state=a&code=c", nil)
	req.AddCookie(&http.Cookie{Name: authService.CookieOAuthState, Value: "a"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.example.com/auth/callback", w.Header().Get("Location"))

	cookies := cookiesByName(w)
	require.Contains(t, cookies, "sessionid")
	assert.True(t, cookies["sessionid"].HttpOnly)
	assert.Equal(t, "abc123", cookies["sessionid"].Value)

	require.Contains(t, cookies, authService.CookieAccessToken)
	assert.False(t, cookies[authService.CookieAccessToken].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[authService.CookieAccessToken].SameSite)

	require.Contains(t, cookies, authService.CookieUserInfo)
	info, err := authService.ParseUserInfo(cookies[authService.CookieUserInfo].Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.UserID)
}

func TestCookiesAreSecureBehindHTTPSProxy(t *testing.T) {
	router := newRouter(&stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/login/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	state := cookiesByName(w)[authService.CookieOAuthState]
	require.NotNil(t, state)
	assert.True(t, state.Secure)
	assert.Equal(t, http.SameSiteNoneMode, state.SameSite)
}
