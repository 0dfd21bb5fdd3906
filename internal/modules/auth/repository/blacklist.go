package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"monkid.com/backoffice/internal/entity"
)

type BlacklistRepository interface {
	Add(ctx context.Context, token *entity.BlacklistedToken) error
	Exists(ctx context.Context, jti string) (bool, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

// Add is idempotent: blacklisting the same token twice is not an error.
func (r *blacklistRepository) Add(ctx context.Context, token *entity.BlacklistedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(token).Error
}

func (r *blacklistRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var token entity.BlacklistedToken
	err := r.db.WithContext(ctx).Select("jti").Where("jti = ?", jti).Take(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
