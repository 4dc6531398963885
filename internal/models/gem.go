package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Gem categories. CategoryAll is a query sentinel, never stored.
const (
	CategoryNature     = "Nature"
	CategoryAdventure  = "Adventure"
	CategoryCulture    = "Culture"
	CategoryFood       = "Food"
	CategoryRelaxation = "Relaxation"
	CategoryOther      = "Other"
	CategoryAll        = "All"
)

// Categories lists every storable gem category.
var Categories = []string{
	CategoryNature,
	CategoryAdventure,
	CategoryCulture,
	CategoryFood,
	CategoryRelaxation,
	CategoryOther,
}

// ValidCategory reports whether c is a storable category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ImageList is a list of image URLs persisted as a single JSON-encoded
// text column. An empty list stores as "[]".
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for ImageList", value)
	}
}

// Gem represents a user-submitted point of interest.
type Gem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null;default:Other;index" json:"category"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	Images      ImageList `gorm:"type:text" json:"images"`
	Location    string    `json:"location"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Reviews []Review   `gorm:"foreignKey:GemID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Votes   []Vote     `gorm:"foreignKey:GemID;constraint:OnDelete:CASCADE" json:"-"`
	SavedBy []SavedGem `gorm:"foreignKey:GemID;constraint:OnDelete:CASCADE" json:"-"`

	// Derived fields, computed in the service layer; never persisted.
	ReviewCount   int      `gorm:"-" json:"reviewCount"`
	AverageRating float64  `gorm:"-" json:"averageRating"`
	Upvotes       int      `gorm:"-" json:"upvotes"`
	Downvotes     int      `gorm:"-" json:"downvotes"`
	Score         int      `gorm:"-" json:"score"`
	Distance      *float64 `gorm:"-" json:"distance,omitempty"`
	UserVote      *string  `gorm:"-" json:"userVote,omitempty"`
	IsSaved       bool     `gorm:"-" json:"isSaved"`
}
