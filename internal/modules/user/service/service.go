package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/internal/modules/user/dto"
	"monkid.com/backoffice/internal/modules/user/repository"
	"monkid.com/backoffice/pkg/apperror"
	"monkid.com/backoffice/pkg/cache"
)

const registerAction = "register"

type UserService interface {
	Register(ctx context.Context, input dto.RegisterInput, clientIP string) (*dto.UserResponse, error)
}

type userService struct {
	repo          repository.UserRepository
	redisClient   *redis.Client
	registerLimit time.Duration
}

func NewUserService(repo repository.UserRepository, redisClient *redis.Client, registerLimit time.Duration) UserService {
	return &userService{
		repo:          repo,
		redisClient:   redisClient,
		registerLimit: registerLimit,
	}
}

func (s *userService) Register(ctx context.Context, input dto.RegisterInput, clientIP string) (*dto.UserResponse, error) {
	allowed, err := cache.CheckAndSetRateLimit(ctx, s.redisClient, clientIP, registerAction, s.registerLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := cache.GetRateLimitTTL(ctx, s.redisClient, clientIP, registerAction)
		return nil, &apperror.RateLimitError{
			Message:    fmt.Sprintf("too many registrations from this address, please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
		}
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}
