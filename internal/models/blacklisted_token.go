package models

import "time"

// BlacklistedToken records a revoked refresh token by its JTI. Revocation
// is per token: other sessions of the same user keep their own refresh
// tokens. Rows past ExpiresAt are safe to purge since the token itself can
// no longer pass signature validation.
type BlacklistedToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	JTI       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"jti"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
