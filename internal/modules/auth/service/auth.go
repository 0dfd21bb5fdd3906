package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/auth/dto"
	authRepo "monkid.com/backoffice/internal/modules/auth/repository"
	userDto "monkid.com/backoffice/internal/modules/user/dto"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
	"monkid.com/backoffice/pkg/apperror"
)

const providerGoogle = "google-oauth2"

// LoginResult is returned by every flow that ends with a fresh credential pair.
type LoginResult struct {
	User       *entity.User
	Tokens     *TokenPair
	SessionKey string
	SessionExp time.Time
}

func (r *LoginResult) TokenPairResponse() *dto.TokenPairResponse {
	return &dto.TokenPairResponse{
		Access:  r.Tokens.Access,
		Refresh: r.Tokens.Refresh,
		User:    userDto.NewUserResponse(r.User),
	}
}

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*LoginResult, error)
	GoogleLoginURL(state string) (string, error)
	CompleteGoogleLogin(ctx context.Context, code string) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken, sessionKey string) error
}

type authService struct {
	users      userRepo.UserRepository
	sessions   authRepo.SessionRepository
	tokens     TokenService
	google     GoogleProvider
	sessionTTL time.Duration
}

func NewAuthService(users userRepo.UserRepository, sessions authRepo.SessionRepository, tokens TokenService, google GoogleProvider, sessionTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		google:     google,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no active account found with the given credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("no active account found with the given credentials: %w", apperror.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	return s.issueFor(ctx, user)
}

func (s *authService) GoogleLoginURL(state string) (string, error) {
	if s.google == nil {
		return "", apperror.New(http.StatusServiceUnavailable, "google login is not configured", nil)
	}
	return s.google.AuthCodeURL(state), nil
}

// CompleteGoogleLogin finishes the redirect handshake: it links or creates the
// account, opens a server-side session and issues a credential pair.
func (s *authService) CompleteGoogleLogin(ctx context.Context, code string) (*LoginResult, error) {
	if s.google == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "google login is not configured", nil)
	}

	profile, err := s.google.FetchUser(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google exchange failed: %w", apperror.ErrUnauthorized)
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, fmt.Errorf("google profile is incomplete: %w", apperror.ErrUnauthorized)
	}

	user, err := s.findOrCreateGoogleUser(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	data, err := json.Marshal(map[string]string{
		"provider": providerGoogle,
		"uid":      profile.ID,
		"email":    profile.Email,
	})
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Key:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:    user.ID,
		Provider:  providerGoogle,
		Data:      datatypes.JSON(data),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	result, err := s.issueFor(ctx, user)
	if err != nil {
		return nil, err
	}
	result.SessionKey = session.Key
	result.SessionExp = session.ExpiresAt
	return result, nil
}

func (s *authService) findOrCreateGoogleUser(ctx context.Context, profile *GoogleProfile) (*entity.User, error) {
	user, err := s.users.FindByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	googleID := profile.ID
	user, err = s.users.FindByEmail(ctx, profile.Email)
	if err == nil {
		user.GoogleID = &googleID
		if user.ProfilePicture == nil && profile.Picture != "" {
			user.ProfilePicture = &profile.Picture
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("linked google account to %s", user.Email)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user = &entity.User{
		Email:        strings.ToLower(profile.Email),
		PasswordHash: string(hashed),
		FirstName:    profile.GivenName,
		LastName:     profile.FamilyName,
		GoogleID:     &googleID,
		IsActive:     true,
	}
	if profile.Picture != "" {
		user.ProfilePicture = &profile.Picture
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("created account %s from google login", user.Email)
	return user, nil
}

// Logout blacklists the refresh token and, when given, revokes the session.
func (s *authService) Logout(ctx context.Context, refreshToken, sessionKey string) error {
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return err
	}
	if sessionKey != "" {
		if err := s.sessions.Revoke(ctx, sessionKey); err != nil {
			return err
		}
	}
	return nil
}

func (s *authService) issueFor(ctx context.Context, user *entity.User) (*LoginResult, error) {
	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("failed to record last login for %s: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}
