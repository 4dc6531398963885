package seed

import (
	"fmt"
	"testing"

	"hiddengems/internal/database"
	"hiddengems/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRun(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumGems: 10}))

	var userCount, gemCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Gem{}).Count(&gemCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 10, gemCount)

	// Showcase accounts exist with known emails.
	var alice models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	assert.Equal(t, "Alice Explorer", alice.Name)

	// Showcase gems are present with their fixed coordinates.
	var gem models.Gem
	require.NoError(t, db.Where("title = ?", "Central Park Secret Spot").First(&gem).Error)
	assert.InDelta(t, 40.785091, gem.Latitude, 1e-9)

	// All seeded gems carry storable categories and valid ratings.
	var gems []models.Gem
	require.NoError(t, db.Find(&gems).Error)
	for _, g := range gems {
		assert.True(t, models.ValidCategory(g.Category), "category %q", g.Category)
	}
	var reviews []models.Review
	require.NoError(t, db.Find(&reviews).Error)
	for _, r := range reviews {
		assert.GreaterOrEqual(t, r.Rating, models.MinRating)
		assert.LessOrEqual(t, r.Rating, models.MaxRating)
	}
}

func TestRun_CleanIsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 3, NumGems: 5}))
	require.NoError(t, Run(db, Options{NumUsers: 3, NumGems: 5, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 3, userCount)
}
