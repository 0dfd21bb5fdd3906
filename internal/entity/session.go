package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session is the server-side login state created by the single-sign-on callback.
type Session struct {
	Key       string         `gorm:"column:session_key;size:64;primaryKey" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Provider  string         `gorm:"size:50;not null" json:"provider"`
	Data      datatypes.JSON `json:"data"`
	ExpiresAt time.Time      `gorm:"index;not null" json:"expires_at"`
	Revoked   bool           `gorm:"index;not null" json:"revoked"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
