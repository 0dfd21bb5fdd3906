package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/auth/service"
)

type CookieConfig struct {
	SessionCookieName string
	ForceSecure       bool
	FrontendURL       string
	SessionTTL        time.Duration
}

// secure reports whether cookies must be marked Secure with SameSite=None.
func (cfg CookieConfig) secure(c *gin.Context) bool {
	return cfg.ForceSecure || c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

func (cfg CookieConfig) set(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	secure := cfg.secure(c)
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", "", secure, httpOnly)
}

// setAuthCookies writes the script-readable cookies the front end uses to
// pick up a fresh login.
func (cfg CookieConfig) setAuthCookies(c *gin.Context, user *entity.User, tokens *service.TokenPair) {
	now := time.Now()
	cfg.set(c, service.CookieAccessToken, tokens.Access, secondsUntil(tokens.AccessExpiresAt, now), false)
	if tokens.Refresh != "" {
		cfg.set(c, service.CookieRefreshToken, tokens.Refresh, secondsUntil(tokens.RefreshExpiresAt, now), false)
	}

	maxAge := int(cfg.SessionTTL.Seconds())
	cfg.set(c, service.CookieUserInfo, service.FormatUserInfo(user, now), maxAge, false)
	cfg.set(c, service.CookieAuthSuccessful, "true", maxAge, false)
	cfg.set(c, service.CookieAuthTimestamp, strconv.FormatInt(now.Unix(), 10), maxAge, false)
}

func (cfg CookieConfig) setSessionCookie(c *gin.Context, key string, expiresAt time.Time) {
	cfg.set(c, cfg.SessionCookieName, key, secondsUntil(expiresAt, time.Now()), true)
}

func (cfg CookieConfig) clearAuthCookies(c *gin.Context) {
	for _, name := range []string{
		service.CookieAccessToken,
		service.CookieRefreshToken,
		service.CookieUserInfo,
		service.CookieAuthSuccessful,
		service.CookieAuthTimestamp,
	} {
		cfg.set(c, name, "", -1, false)
	}
	cfg.set(c, cfg.SessionCookieName, "", -1, true)
}

func secondsUntil(t, now time.Time) int {
	if d := t.Sub(now); d > 0 {
		return int(d.Seconds())
	}
	return 0
}
