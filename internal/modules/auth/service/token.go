package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/auth/repository"
	"monkid.com/backoffice/pkg/apperror"
	"monkid.com/backoffice/pkg/cache"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// UserUUID returns the identity embedded in the token.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

type TokenPair struct {
	Access           string
	Refresh          string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type TokenService interface {
	Issue(user *entity.User) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Verify(accessToken string) (*Claims, error)
	Revoke(ctx context.Context, refreshToken string) error
}

type TokenConfig struct {
	Secret      string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	RotateOnUse bool
}

type tokenService struct {
	cfg         TokenConfig
	blacklist   repository.BlacklistRepository
	redisClient *redis.Client
}

func NewTokenService(cfg TokenConfig, blacklist repository.BlacklistRepository, redisClient *redis.Client) TokenService {
	return &tokenService{
		cfg:         cfg,
		blacklist:   blacklist,
		redisClient: redisClient,
	}
}

func (s *tokenService) Issue(user *entity.User) (*TokenPair, error) {
	access, accessExp, err := s.sign(user.ID.String(), TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.sign(user.ID.String(), TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh returns a new access token. With rotation enabled the pair also
// carries a new refresh token and the presented one is blacklisted.
func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(strings.TrimSpace(refreshToken), TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("token is blacklisted: %w", apperror.ErrInvalidCredential)
	}

	access, accessExp, err := s.sign(claims.UserID, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	pair := &TokenPair{Access: access, AccessExpiresAt: accessExp}

	if s.cfg.RotateOnUse {
		if err := s.blacklistClaims(ctx, claims); err != nil {
			return nil, err
		}
		refresh, refreshExp, err := s.sign(claims.UserID, TokenTypeRefresh, s.cfg.RefreshTTL)
		if err != nil {
			return nil, err
		}
		pair.Refresh = refresh
		pair.RefreshExpiresAt = refreshExp
	}

	return pair, nil
}

func (s *tokenService) Verify(accessToken string) (*Claims, error) {
	return s.parse(strings.TrimSpace(accessToken), TokenTypeAccess)
}

func (s *tokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(strings.TrimSpace(refreshToken), TokenTypeRefresh)
	if err != nil {
		return err
	}
	return s.blacklistClaims(ctx, claims)
}

func (s *tokenService) blacklistClaims(ctx context.Context, claims *Claims) error {
	userID, err := claims.UserUUID()
	if err != nil {
		return fmt.Errorf("invalid subject: %w", apperror.ErrInvalidCredential)
	}

	expiresAt := claims.ExpiresAt.Time
	if err := s.blacklist.Add(ctx, &entity.BlacklistedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return err
	}

	if err := cache.MarkRevoked(ctx, s.redisClient, claims.ID, expiresAt); err != nil {
		log.Printf("failed to cache revoked token %s: %v", claims.ID, err)
	}
	return nil
}

func (s *tokenService) isRevoked(ctx context.Context, jti string) (bool, error) {
	cached, err := cache.IsRevoked(ctx, s.redisClient, jti)
	if err != nil {
		log.Printf("revocation cache lookup failed, falling back to database: %v", err)
	}
	if cached {
		return true, nil
	}
	return s.blacklist.Exists(ctx, jti)
}

func (s *tokenService) sign(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *tokenService) parse(raw, tokenType string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("token is empty: %w", apperror.ErrInvalidCredential)
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token has expired: %w", apperror.ErrInvalidCredential)
		}
		return nil, fmt.Errorf("token is malformed: %w", apperror.ErrInvalidCredential)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", apperror.ErrInvalidCredential)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token has wrong type: %w", apperror.ErrInvalidCredential)
	}
	if claims.ID == "" || claims.UserID == "" {
		return nil, fmt.Errorf("token is missing claims: %w", apperror.ErrInvalidCredential)
	}
	return claims, nil
}
