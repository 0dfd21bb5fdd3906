package entity

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistedToken marks a refresh token as permanently unusable.
type BlacklistedToken struct {
	JTI           string    `gorm:"size:64;primaryKey" json:"jti"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt     time.Time `gorm:"index;not null" json:"expires_at"`
	BlacklistedAt time.Time `gorm:"autoCreateTime" json:"blacklisted_at"`
}
