package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	authService "monkid.com/backoffice/internal/modules/auth/service"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
	"monkid.com/backoffice/internal/permission"
	"monkid.com/backoffice/pkg/apperror"
	"monkid.com/backoffice/pkg/response"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	tokens   authService.TokenService
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, tokens authService.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate resolves an optional bearer token. Requests without one pass
// through anonymously; a token that is present but invalid is rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			response.ResponseError(c, fmt.Errorf("invalid subject: %w", apperror.ErrInvalidCredential))
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.ResponseError(c, fmt.Errorf("user not found: %w", apperror.ErrInvalidCredential))
				return
			}
			response.ResponseError(c, err)
			return
		}
		if !user.IsActive {
			response.ResponseError(c, apperror.ErrAccountDisabled)
			return
		}

		c.Set(response.UserKey, user)
		c.Set(response.ClaimsKey, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if response.GetUser(c) == nil {
			response.ResponseError(c, apperror.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// Authorize rejects the request with 403 when the policy denies the action
// for the current caller, anonymous callers included.
func (m *AuthMiddleware) Authorize(policy permission.Policy, action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.Allows(response.GetUser(c), action) {
			response.ResponseError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified access token claims, or nil.
func GetClaims(c *gin.Context) *authService.Claims {
	value, exists := c.Get(response.ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*authService.Claims)
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
