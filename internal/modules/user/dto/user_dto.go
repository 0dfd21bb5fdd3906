package dto

import (
	"time"

	"github.com/google/uuid"
	"monkid.com/backoffice/internal/entity"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	IsTeacher      bool       `json:"is_teacher"`
	IsAdmin        bool       `json:"is_admin"`
	IsStaff        bool       `json:"is_staff"`
	IsSuperuser    bool       `json:"is_superuser"`
	IsActive       bool       `json:"is_active"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"date_joined"`
}

func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		IsTeacher:      u.IsTeacher,
		IsAdmin:        u.IsAdmin,
		IsStaff:        u.IsStaff,
		IsSuperuser:    u.IsSuperuser,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
	}
}

type PermissionsResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	IsTeacher   bool      `json:"is_teacher"`
	IsAdmin     bool      `json:"is_admin"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
}

func NewPermissionsResponse(u *entity.User) *PermissionsResponse {
	return &PermissionsResponse{
		UserID:      u.ID,
		Email:       u.Email,
		IsTeacher:   u.IsTeacher,
		IsAdmin:     u.IsAdmin,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}
