package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"monkid.com/backoffice/internal/entity"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindLive(ctx context.Context, key string, now time.Time) (*entity.Session, error)
	Revoke(ctx context.Context, key string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindLive returns gorm.ErrRecordNotFound for unknown, expired or revoked keys.
func (r *sessionRepository) FindLive(ctx context.Context, key string, now time.Time) (*entity.Session, error) {
	var session entity.Session
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("session_key = ?", key).
		Where("revoked = ?", false).
		Where("expires_at > ?", now).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("session_key = ?", key).
		Update("revoked", true).Error
}
