// Package entity defines the domain entities for the category feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// Category is a node of the category tree. A nil ParentID marks a root.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:55;not null;uniqueIndex"`
	Slug      string `gorm:"size:55;not null;uniqueIndex"`
	ParentID  *uint  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
