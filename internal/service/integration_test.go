package service

import (
	"context"
	"fmt"
	"testing"

	"hiddengems/internal/database"
	"hiddengems/internal/models"
	"hiddengems/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// Category and search filtering are covered by the sqlmock repository
// tests; this file exercises the stack end to end on a real database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGemLifecycle_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	gemRepo := repository.NewGemRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	gemSvc := NewGemService(gemRepo, staticGeocoder(40.0, -74.0))
	reviewSvc := NewReviewService(reviewRepo, gemRepo)
	userSvc := NewUserService(userRepo, gemRepo)

	alice := &models.User{Name: "Alice Explorer", Email: "alice@example.com", Password: "hashed"}
	bob := &models.User{Name: "Bob Traveler", Email: "bob@example.com", Password: "hashed"}
	require.NoError(t, userRepo.Create(ctx, alice))
	require.NoError(t, userRepo.Create(ctx, bob))

	gem, err := gemSvc.CreateGem(ctx, CreateGemInput{
		UserID:      alice.ID,
		Title:       "Quiet Riverside Bench",
		Description: "A bench with a clear view of the river bend",
		Category:    models.CategoryRelaxation,
		Latitude:    40.0,
		Longitude:   -74.0,
	})
	require.NoError(t, err)
	require.NotZero(t, gem.ID)

	// Far-away gem that the distance cutoff must drop.
	_, err = gemSvc.CreateGem(ctx, CreateGemInput{
		UserID:      alice.ID,
		Title:       "Distant Lookout",
		Description: "Hundreds of kilometers away",
		Category:    models.CategoryNature,
		Latitude:    45.0,
		Longitude:   -70.0,
	})
	require.NoError(t, err)

	// Reviews averaging 4.0, votes netting zero.
	_, err = reviewSvc.CreateReview(ctx, CreateReviewInput{UserID: bob.ID, GemID: gem.ID, Content: "Lovely spot", Rating: 5})
	require.NoError(t, err)
	_, err = reviewSvc.CreateReview(ctx, CreateReviewInput{UserID: alice.ID, GemID: gem.ID, Content: "Gets crowded", Rating: 3})
	require.NoError(t, err)

	_, err = gemSvc.VoteGem(ctx, alice.ID, gem.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = gemSvc.VoteGem(ctx, bob.ID, gem.ID, models.VoteDown)
	require.NoError(t, err)

	require.NoError(t, gemSvc.SaveGem(ctx, bob.ID, gem.ID))
	// Saving twice is idempotent.
	require.NoError(t, gemSvc.SaveGem(ctx, bob.ID, gem.ID))

	t.Run("Listing Near City", func(t *testing.T) {
		result, err := gemSvc.ListGems(ctx, ListGemsInput{City: "Trenton", CurrentUserID: bob.ID})
		require.NoError(t, err)
		require.Len(t, result.Gems, 1, "the distant gem is outside the radius")

		listed := result.Gems[0]
		assert.Equal(t, "Quiet Riverside Bench", listed.Title)
		assert.Equal(t, 2, listed.ReviewCount)
		assert.InDelta(t, 4.0, listed.AverageRating, 1e-9)
		assert.Equal(t, 1, listed.Upvotes)
		assert.Equal(t, 1, listed.Downvotes)
		assert.Equal(t, 0, listed.Score)
		require.NotNil(t, listed.Distance)
		assert.InDelta(t, 0, *listed.Distance, 1e-6)
		require.NotNil(t, listed.UserVote)
		assert.Equal(t, models.VoteDown, *listed.UserVote)
		assert.True(t, listed.IsSaved)

		require.NotNil(t, result.CityCenter)
		assert.InDelta(t, 40.0, result.CityCenter.Lat, 1e-9)
		assert.Equal(t, 1, result.TotalPages)
		assert.Equal(t, 1, result.CurrentPage)
	})

	t.Run("Revote Replaces Not Stacks", func(t *testing.T) {
		detail, err := gemSvc.VoteGem(ctx, bob.ID, gem.ID, models.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 2, detail.Upvotes)
		assert.Equal(t, 0, detail.Downvotes)
		require.NotNil(t, detail.UserVote)
		assert.Equal(t, models.VoteUp, *detail.UserVote)

		// Repeating the same vote leaves a single row of that type.
		detail, err = gemSvc.VoteGem(ctx, bob.ID, gem.ID, models.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 2, detail.Upvotes)
		assert.Equal(t, 0, detail.Downvotes)

		var voteRows int64
		require.NoError(t, db.Model(&models.Vote{}).
			Where("user_id = ? AND gem_id = ?", bob.ID, gem.ID).
			Count(&voteRows).Error)
		assert.Equal(t, int64(1), voteRows)
	})

	t.Run("Detail Carries Reviews", func(t *testing.T) {
		detail, err := gemSvc.GetGem(ctx, gem.ID, 0)
		require.NoError(t, err)
		require.Len(t, detail.Reviews, 2)
		assert.Equal(t, "Alice Explorer", detail.User.Name)
		assert.Nil(t, detail.UserVote)
		assert.False(t, detail.IsSaved)
	})

	t.Run("Profile Aggregates", func(t *testing.T) {
		profile, err := userSvc.GetProfile(ctx, bob.ID, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, profile.Gems)
		require.Len(t, profile.SavedGems, 1)
		assert.True(t, profile.SavedGems[0].IsSaved)
	})

	t.Run("Profile Hides Owner Vote From Anonymous", func(t *testing.T) {
		profile, err := userSvc.GetProfile(ctx, alice.ID, 0)
		require.NoError(t, err)
		require.NotEmpty(t, profile.Gems)
		for _, g := range profile.Gems {
			assert.Nil(t, g.UserVote)
			assert.False(t, g.IsSaved)
		}
	})

	t.Run("Unsave Then Unsave Again", func(t *testing.T) {
		require.NoError(t, gemSvc.UnsaveGem(ctx, bob.ID, gem.ID))
		require.NoError(t, gemSvc.UnsaveGem(ctx, bob.ID, gem.ID))

		profile, err := userSvc.GetProfile(ctx, bob.ID, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, profile.SavedGems)
	})

	t.Run("Delete Cascades", func(t *testing.T) {
		require.NoError(t, gemSvc.DeleteGem(ctx, alice.ID, gem.ID))
		_, err := gemSvc.GetGem(ctx, gem.ID, 0)
		assertNotFoundError(t, err)
	})
}
