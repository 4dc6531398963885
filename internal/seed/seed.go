// Package seed provides database seeding utilities for development and
// testing. Not intended for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"hiddengems/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGems     int
	ShouldClean bool
}

// Showcase data seeded with fixed coordinates so the map view always has
// something to show around New York and London.
var showcaseGems = []models.Gem{
	{
		Title:       "Central Park Secret Spot",
		Description: "A quiet clearing north of the reservoir that most visitors never find.",
		Category:    models.CategoryNature,
		Latitude:    40.785091,
		Longitude:   -73.968285,
		Location:    "New York",
	},
	{
		Title:       "High Line Hidden Garden",
		Description: "A tucked-away planting section near the 23rd St stairs, best at sunset.",
		Category:    models.CategoryRelaxation,
		Latitude:    40.7484,
		Longitude:   -74.0048,
		Location:    "New York",
	},
	{
		Title:       "Little Venice",
		Description: "Canal-side walk with narrowboat cafes, far quieter than Camden.",
		Category:    models.CategoryCulture,
		Latitude:    51.5228,
		Longitude:   -0.1817,
		Location:    "London",
	},
}

// Run seeds the database with demo users, gems, reviews and votes.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		if err := db.Exec("DELETE FROM saved_gems").Error; err != nil {
			return fmt.Errorf("clean saved_gems: %w", err)
		}
		if err := db.Exec("DELETE FROM votes").Error; err != nil {
			return fmt.Errorf("clean votes: %w", err)
		}
		if err := db.Exec("DELETE FROM reviews").Error; err != nil {
			return fmt.Errorf("clean reviews: %w", err)
		}
		if err := db.Exec("DELETE FROM gems").Error; err != nil {
			return fmt.Errorf("clean gems: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("clean users: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := []*models.User{
		{Name: "Alice Explorer", Email: "alice@example.com", Password: string(hashed)},
		{Name: "Bob Traveler", Email: "bob@example.com", Password: string(hashed)},
	}

	numUsers := opts.NumUsers
	if numUsers < len(users) {
		numUsers = len(users)
	}
	for i := len(users); i < numUsers; i++ {
		users = append(users, &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		})
	}
	for _, user := range users {
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}
	log.Printf("Seeded %d users", len(users))

	var gems []*models.Gem
	for i := range showcaseGems {
		gem := showcaseGems[i]
		gem.UserID = users[i%len(users)].ID
		gems = append(gems, &gem)
	}
	for i := len(gems); i < opts.NumGems; i++ {
		// Scatter random gems around the first showcase gem so the
		// default "near New York" view is populated.
		center := showcaseGems[0]
		gems = append(gems, &models.Gem{
			Title:       gofakeit.Sentence(3),
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			Category:    models.Categories[r.Intn(len(models.Categories))],
			Latitude:    center.Latitude + (r.Float64()-0.5)*0.6,
			Longitude:   center.Longitude + (r.Float64()-0.5)*0.6,
			Location:    gofakeit.City(),
			UserID:      users[r.Intn(len(users))].ID,
			CreatedAt:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		})
	}
	for _, gem := range gems {
		if err := db.Create(gem).Error; err != nil {
			return fmt.Errorf("seed gem %q: %w", gem.Title, err)
		}
	}
	log.Printf("Seeded %d gems", len(gems))

	// Reviews and votes from random users, at most one vote per user+gem.
	reviews, votes, saves := 0, 0, 0
	for _, gem := range gems {
		for _, user := range users {
			if user.ID == gem.UserID {
				continue
			}
			if r.Intn(3) == 0 {
				review := &models.Review{
					Content: gofakeit.Sentence(10),
					Rating:  1 + r.Intn(5),
					GemID:   gem.ID,
					UserID:  user.ID,
				}
				if err := db.Create(review).Error; err != nil {
					return fmt.Errorf("seed review: %w", err)
				}
				reviews++
			}
			if r.Intn(2) == 0 {
				voteType := models.VoteUp
				if r.Intn(4) == 0 {
					voteType = models.VoteDown
				}
				vote := &models.Vote{Type: voteType, GemID: gem.ID, UserID: user.ID}
				if err := db.Create(vote).Error; err != nil {
					return fmt.Errorf("seed vote: %w", err)
				}
				votes++
			}
			if r.Intn(5) == 0 {
				saved := &models.SavedGem{GemID: gem.ID, UserID: user.ID}
				if err := db.Create(saved).Error; err != nil {
					return fmt.Errorf("seed save: %w", err)
				}
				saves++
			}
		}
	}
	log.Printf("Seeded %d reviews, %d votes, %d saves", reviews, votes, saves)

	return nil
}
