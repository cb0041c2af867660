// Package entity defines the domain entities for the user feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// User is an administrator account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:255;not null"`

	// Email is unique across users and used to log in.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. It never holds plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
