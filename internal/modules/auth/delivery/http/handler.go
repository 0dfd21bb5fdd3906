package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"monkid.com/backoffice/internal/middleware"
	"monkid.com/backoffice/internal/modules/auth/dto"
	authService "monkid.com/backoffice/internal/modules/auth/service"
	userDto "monkid.com/backoffice/internal/modules/user/dto"
	"monkid.com/backoffice/pkg/apperror"
	"monkid.com/backoffice/pkg/response"
	"monkid.com/backoffice/pkg/validator"
)

const oauthStateMaxAge = 10 * time.Minute

type AuthHandler struct {
	auth    authService.AuthService
	tokens  authService.TokenService
	bridge  authService.SessionBridge
	cookies CookieConfig
}

func NewAuthHandler(auth authService.AuthService, tokens authService.TokenService, bridge authService.SessionBridge, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		tokens:  tokens,
		bridge:  bridge,
		cookies: cookies,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res.TokenPairResponse())
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input dto.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	pair, err := h.tokens.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{Access: pair.Access, Refresh: pair.Refresh})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var input dto.VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	if _, err := h.tokens.Verify(input.Token); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthHandler) Introspect(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	userID, _ := uuid.Parse(claims.UserID)
	c.JSON(http.StatusOK, dto.IntrospectResponse{
		Active:    true,
		Exp:       claims.ExpiresAt.Unix(),
		UserID:    userID,
		TokenType: claims.TokenType,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var input dto.LogoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	sessionKey, _ := c.Cookie(h.cookies.SessionCookieName)
	if err := h.auth.Logout(c.Request.Context(), input.Refresh, sessionKey); err != nil {
		response.ResponseError(c, err)
		return
	}

	h.cookies.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

func (h *AuthHandler) Permissions(c *gin.Context) {
	user, err := response.MustGetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDto.NewPermissionsResponse(user))
}

// SessionToToken exchanges whatever session or cookie identity the request
// carries for a bearer credential pair.
func (h *AuthHandler) SessionToToken(c *gin.Context) {
	res, err := h.bridge.Exchange(c.Request.Context(), c.Request)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.cookies.setAuthCookies(c, res.User, res.Tokens)
	c.JSON(http.StatusOK, dto.SessionTokenResponse{
		Access:   res.Tokens.Access,
		Refresh:  res.Tokens.Refresh,
		User:     userDto.NewUserResponse(res.User),
		Strategy: res.Strategy,
	})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	redirectURL, err := h.auth.GoogleLoginURL(state)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.cookies.set(c, authService.CookieOAuthState, state, int(oauthStateMaxAge.Seconds()), true)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, _ := c.Cookie(authService.CookieOAuthState)
	h.cookies.set(c, authService.CookieOAuthState, "", -1, true)

	if errParam := c.Query("error"); errParam != "" {
		h.redirectLoginError(c, errParam)
		return
	}
	if expected == "" || c.Query("state") != expected {
		h.redirectLoginError(c, "invalid_state")
		return
	}
	code := c.Query("code")
	if code == "" {
		h.redirectLoginError(c, "missing_code")
		return
	}

	res, err := h.auth.CompleteGoogleLogin(c.Request.Context(), code)
	if err != nil {
		h.redirectLoginError(c, loginErrorCode(err))
		return
	}

	h.cookies.setSessionCookie(c, res.SessionKey, res.SessionExp)
	h.cookies.setAuthCookies(c, res.User, res.Tokens)
	c.Redirect(http.StatusFound, h.cookies.FrontendURL+"/auth/callback")
}

// loginErrorCode maps a failed Google login to the short code put in the
// redirect; error text never reaches the query string.
func loginErrorCode(err error) string {
	switch {
	case errors.Is(err, apperror.ErrAccountDisabled):
		return "account_disabled"
	case errors.Is(err, apperror.ErrUnauthorized):
		return "access_denied"
	case apperror.MapErrorToStatus(err) == http.StatusServiceUnavailable:
		return "provider_unavailable"
	default:
		log.Printf("[Internal Error]: google callback: %v", err)
		return "login_failed"
	}
}

func (h *AuthHandler) redirectLoginError(c *gin.Context, reason string) {
	reason = strings.TrimSpace(reason)
	c.Redirect(http.StatusFound, h.cookies.FrontendURL+"/login?error="+url.QueryEscape(reason))
}
