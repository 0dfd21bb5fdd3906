package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	FirstName      string     `gorm:"size:150" json:"first_name"`
	LastName       string     `gorm:"size:150" json:"last_name"`
	IsTeacher      bool       `gorm:"not null" json:"is_teacher"`
	IsAdmin        bool       `gorm:"not null" json:"is_admin"`
	IsStaff        bool       `gorm:"not null" json:"is_staff"`
	IsSuperuser    bool       `gorm:"not null" json:"is_superuser"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	GoogleID       *string    `gorm:"size:100;uniqueIndex" json:"google_id,omitempty"`
	ProfilePicture *string    `gorm:"type:text" json:"profile_picture,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
