// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedToken is the persistence model of a token revoked by logout.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// revokedTokenGorm stores revoked token ids in the database. It is used when
// Redis is not available.
type revokedTokenGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRevokedTokenGorm creates a new instance of revokedTokenGorm.
func NewRevokedTokenGorm(db *gorm.DB) *revokedTokenGorm {
	return &revokedTokenGorm{db: db, now: time.Now}
}

// Revoke records jti until expiresAt. Revoking twice is not an error.
func (r *revokedTokenGorm) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return errors.New("empty token id")
	}
	if !expiresAt.After(r.now()) {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}

// IsRevoked reports whether jti is revoked and not yet expired.
func (r *revokedTokenGorm) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, r.now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes entries whose tokens have expired.
func (r *revokedTokenGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&RevokedToken{})
	return result.RowsAffected, result.Error
}
