package response

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/pkg/apperror"
)

const (
	UserKey   = "user"
	ClaimsKey = "token_claims"
)

// GetUser returns the authenticated user stored by the auth middleware, or nil.
func GetUser(c *gin.Context) *entity.User {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entity.User)
	return user
}

// MustGetUser is GetUser for routes guarded by RequireAuth.
func MustGetUser(c *gin.Context) (*entity.User, error) {
	user := GetUser(c)
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.AbortWithStatusJSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	body := gin.H{"error": err.Error()}

	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		body["error"] = "validation failed"
		body["fields"] = validationErr.Fields
	}

	var missingErr *apperror.MissingError
	if errors.As(err, &missingErr) {
		body["missing_ids"] = missingErr.IDs
	}

	var unauthErr *apperror.UnauthenticatedError
	if errors.As(err, &unauthErr) {
		body["attempted"] = unauthErr.Attempted
	}

	var rateLimitErr *apperror.RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
	}

	c.AbortWithStatusJSON(code, body)
}

// RequestURL returns the absolute URL of the current request, used for
// pagination links.
func RequestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	return &u
}
