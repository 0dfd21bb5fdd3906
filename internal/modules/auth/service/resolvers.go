package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
	authRepo "monkid.com/backoffice/internal/modules/auth/repository"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
	"monkid.com/backoffice/pkg/apperror"
)

const HeaderUserEmail = "X-User-Email"

// Resolver recovers an authenticated user from a request. It returns
// (nil, nil) when it has nothing to offer so the next resolver can run; a
// non-nil error stops the chain.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, r *http.Request) (*entity.User, error)
}

type ResolverFunc struct {
	name string
	fn   func(ctx context.Context, r *http.Request) (*entity.User, error)
}

func NewResolverFunc(name string, fn func(ctx context.Context, r *http.Request) (*entity.User, error)) ResolverFunc {
	return ResolverFunc{name: name, fn: fn}
}

func (f ResolverFunc) Name() string { return f.name }

func (f ResolverFunc) Resolve(ctx context.Context, r *http.Request) (*entity.User, error) {
	return f.fn(ctx, r)
}

type ResolverConfig struct {
	SessionCookieName string
	Development       bool
	DevFallbackEmail  string
}

// DefaultResolvers builds the chain: session, user_info cookie, access token
// cookie, email hints, and (development only) the fallback admin account.
func DefaultResolvers(cfg ResolverConfig, users userRepo.UserRepository, sessions authRepo.SessionRepository, tokens TokenService) []Resolver {
	resolvers := []Resolver{
		SessionResolver(sessions, cfg.SessionCookieName),
		UserInfoCookieResolver(users),
		AccessTokenCookieResolver(tokens, users),
		EmailHintResolver(users),
	}
	if cfg.Development {
		resolvers = append(resolvers, DevFallbackResolver(users, cfg.DevFallbackEmail))
	}
	return resolvers
}

func SessionResolver(sessions authRepo.SessionRepository, cookieName string) Resolver {
	return NewResolverFunc("session", func(ctx context.Context, r *http.Request) (*entity.User, error) {
		cookie, err := r.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return nil, nil
		}

		session, err := sessions.FindLive(ctx, cookie.Value, time.Now())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if !session.User.IsActive {
			return nil, apperror.ErrAccountDisabled
		}
		return &session.User, nil
	})
}

func UserInfoCookieResolver(users userRepo.UserRepository) Resolver {
	return NewResolverFunc("user_info_cookie", func(ctx context.Context, r *http.Request) (*entity.User, error) {
		cookie, err := r.Cookie(CookieUserInfo)
		if err != nil || cookie.Value == "" {
			return nil, nil
		}

		info, err := ParseUserInfo(cookie.Value)
		if err != nil {
			log.Printf("session bridge: unreadable user_info cookie: %v", err)
			return nil, nil
		}

		return activeOrNil(users.FindByIDAndEmail(ctx, info.UserID, info.Email))
	})
}

func AccessTokenCookieResolver(tokens TokenService, users userRepo.UserRepository) Resolver {
	return NewResolverFunc("access_token_cookie", func(ctx context.Context, r *http.Request) (*entity.User, error) {
		cookie, err := r.Cookie(CookieAccessToken)
		if err != nil || cookie.Value == "" {
			return nil, nil
		}

		raw, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			return nil, nil
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Printf("session bridge: access token cookie rejected: %v", err)
			return nil, nil
		}

		id, err := claims.UserUUID()
		if err != nil {
			return nil, nil
		}
		return activeOrNil(users.FindByID(ctx, id))
	})
}

// EmailHintResolver tries the X-User-Email header, then Basic auth, then the
// email / user_email query parameters. A Basic auth password, when present,
// must match.
func EmailHintResolver(users userRepo.UserRepository) Resolver {
	return NewResolverFunc("email_hint", func(ctx context.Context, r *http.Request) (*entity.User, error) {
		for _, hint := range emailHints(r) {
			user, err := activeOrNil(users.FindByEmail(ctx, hint.email))
			if err != nil {
				return nil, err
			}
			if user == nil {
				continue
			}
			if hint.password != "" && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(hint.password)) != nil {
				log.Printf("session bridge: basic auth password mismatch for %s", hint.email)
				continue
			}
			return user, nil
		}
		return nil, nil
	})
}

type emailHint struct {
	email    string
	password string
}

func emailHints(r *http.Request) []emailHint {
	var hints []emailHint
	add := func(email, password string) {
		email = strings.TrimSpace(email)
		if email != "" && strings.Contains(email, "@") {
			hints = append(hints, emailHint{email: email, password: password})
		}
	}

	add(r.Header.Get(HeaderUserEmail), "")
	if username, password, ok := r.BasicAuth(); ok {
		add(username, password)
	}
	query := r.URL.Query()
	add(query.Get("email"), "")
	add(query.Get("user_email"), "")
	return hints
}

// DevFallbackResolver fetches or creates the development administrator. It
// must only be part of a chain built for a development configuration.
func DevFallbackResolver(users userRepo.UserRepository, email string) Resolver {
	return NewResolverFunc("dev_fallback", func(ctx context.Context, r *http.Request) (*entity.User, error) {
		user, err := users.FindByEmail(ctx, email)
		if err == nil {
			if !user.IsActive {
				return nil, nil
			}
			log.Printf("session bridge: development fallback authenticated as %s", email)
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
			Email:        email,
			PasswordHash: string(hashed),
			FirstName:    "Admin",
			LastName:     "User",
			IsAdmin:      true,
			IsStaff:      true,
			IsSuperuser:  true,
			IsActive:     true,
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("session bridge: development fallback created %s", email)
		return user, nil
	})
}

func activeOrNil(user *entity.User, err error) (*entity.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}
