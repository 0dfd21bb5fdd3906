package dto

import (
	"github.com/google/uuid"
	userDto "monkid.com/backoffice/internal/modules/user/dto"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type VerifyInput struct {
	Token string `json:"token" binding:"required"`
}

type LogoutInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenPairResponse struct {
	Access  string                `json:"access"`
	Refresh string                `json:"refresh"`
	User    *userDto.UserResponse `json:"user,omitempty"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type IntrospectResponse struct {
	Active    bool      `json:"active"`
	Exp       int64     `json:"exp"`
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`
}

type SessionTokenResponse struct {
	Access   string                `json:"access"`
	Refresh  string                `json:"refresh"`
	User     *userDto.UserResponse `json:"user"`
	Strategy string                `json:"strategy"`
}
