package models

import (
	"time"
)

// SavedGem is a user's bookmark of a gem. The unique index on
// (user_id, gem_id) keeps duplicate saves idempotent.
type SavedGem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GemID     uint      `gorm:"not null;uniqueIndex:idx_saved_gems_user_gem" json:"gemId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_gems_user_gem" json:"userId"`
	Gem       *Gem      `gorm:"foreignKey:GemID" json:"gem,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
