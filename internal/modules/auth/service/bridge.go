package service

import (
	"context"
	"log"
	"net/http"

	"monkid.com/backoffice/internal/entity"
	"monkid.com/backoffice/pkg/apperror"
)

type BridgeResult struct {
	User     *entity.User
	Tokens   *TokenPair
	Strategy string
}

// SessionBridge exchanges cookie or session based proof of identity for a
// bearer token pair.
type SessionBridge interface {
	Exchange(ctx context.Context, r *http.Request) (*BridgeResult, error)
}

type sessionBridge struct {
	tokens    TokenService
	resolvers []Resolver
}

func NewSessionBridge(tokens TokenService, resolvers ...Resolver) SessionBridge {
	return &sessionBridge{tokens: tokens, resolvers: resolvers}
}

func (b *sessionBridge) Exchange(ctx context.Context, r *http.Request) (*BridgeResult, error) {
	attempted := make([]string, 0, len(b.resolvers))

	for _, resolver := range b.resolvers {
		attempted = append(attempted, resolver.Name())

		user, err := resolver.Resolve(ctx, r)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}

		tokens, err := b.tokens.Issue(user)
		if err != nil {
			return nil, err
		}
		return &BridgeResult{User: user, Tokens: tokens, Strategy: resolver.Name()}, nil
	}

	log.Printf("session bridge: no identity resolved, attempted %v", attempted)
	return nil, &apperror.UnauthenticatedError{Attempted: attempted}
}
