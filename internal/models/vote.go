package models

// Vote types.
const (
	VoteUp   = "UP"
	VoteDown = "DOWN"
)

// ValidVoteType reports whether t is a recognized vote type.
func ValidVoteType(t string) bool {
	return t == VoteUp || t == VoteDown
}

// Vote is a user's UP/DOWN endorsement of a gem. The unique index on
// (user_id, gem_id) backs the one-vote-per-pair upsert.
type Vote struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Type   string `gorm:"not null" json:"type"`
	GemID  uint   `gorm:"not null;uniqueIndex:idx_votes_user_gem" json:"gemId"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_votes_user_gem" json:"userId"`
}
