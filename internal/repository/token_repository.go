package repository

import (
	"errors"
	"time"

	"github.com/hsaito/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Blacklist records a revoked refresh token
func (r *GormTokenRepository) Blacklist(token *models.BlacklistedToken) error {
	return r.db.Create(token).Error
}

// IsBlacklisted reports whether a token JTI has been revoked
func (r *GormTokenRepository) IsBlacklisted(jti string) (bool, error) {
	var token models.BlacklistedToken
	err := r.db.Where("jti = ?", jti).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteExpired removes blacklist rows whose tokens have expired anyway
func (r *GormTokenRepository) DeleteExpired(now time.Time) error {
	return r.db.Where("expires_at < ?", now).Delete(&models.BlacklistedToken{}).Error
}
