// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Gems      []Gem      `gorm:"foreignKey:UserID" json:"gems,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:UserID" json:"-"`
	Votes     []Vote     `gorm:"foreignKey:UserID" json:"-"`
	SavedGems []SavedGem `gorm:"foreignKey:UserID" json:"-"`
}
