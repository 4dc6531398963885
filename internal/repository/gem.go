package repository

import (
	"context"
	"errors"
	"strings"

	"hiddengems/internal/cache"
	"hiddengems/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GemRepository defines persistence operations for gems, votes and saves.
type GemRepository interface {
	Create(ctx context.Context, gem *models.Gem) error
	GetByID(ctx context.Context, id uint) (*models.Gem, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Gem, error)
	ListFiltered(ctx context.Context, search, category string) ([]models.Gem, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Gem, error)
	GetSavedByUserID(ctx context.Context, userID uint) ([]models.Gem, error)
	Update(ctx context.Context, gem *models.Gem) error
	Delete(ctx context.Context, id uint) error
	UpsertVote(ctx context.Context, userID, gemID uint, voteType string) error
	SaveGem(ctx context.Context, userID, gemID uint) error
	UnsaveGem(ctx context.Context, userID, gemID uint) error
}

type gemRepository struct {
	db *gorm.DB
}

// NewGemRepository returns a new GemRepository implementation.
func NewGemRepository(db *gorm.DB) GemRepository {
	return &gemRepository{db: db}
}

func (r *gemRepository) Create(ctx context.Context, gem *models.Gem) error {
	if err := r.db.WithContext(ctx).Create(gem).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID fetches the bare gem row, cache-aside. Used for existence and
// ownership checks; use GetByIDWithDetails for the full detail view.
func (r *gemRepository) GetByID(ctx context.Context, id uint) (*models.Gem, error) {
	var gem models.Gem
	key := cache.GemKey(id)

	err := cache.Aside(ctx, key, &gem, cache.GemTTL, func() error {
		if err := r.db.WithContext(ctx).First(&gem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Gem", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &gem, nil
}

func (r *gemRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Gem, error) {
	var gem models.Gem
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		Preload("Votes").
		Preload("SavedBy").
		First(&gem, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Gem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &gem, nil
}

// ListFiltered returns gems matching the search substring and category.
// Distance filtering, sorting and pagination happen in the service layer
// because they depend on computed values.
func (r *gemRepository) ListFiltered(ctx context.Context, search, category string) ([]models.Gem, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Reviews").
		Preload("Votes").
		Preload("SavedBy")

	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if category != "" && category != models.CategoryAll {
		query = query.Where("category = ?", category)
	}

	var gems []models.Gem
	if err := query.Order("created_at DESC").Find(&gems).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return gems, nil
}

func (r *gemRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Gem, error) {
	var gems []models.Gem
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Votes").
		Preload("SavedBy").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&gems).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return gems, nil
}

func (r *gemRepository) GetSavedByUserID(ctx context.Context, userID uint) ([]models.Gem, error) {
	var gems []models.Gem
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Votes").
		Preload("SavedBy").
		Joins("JOIN saved_gems ON saved_gems.gem_id = gems.id").
		Where("saved_gems.user_id = ?", userID).
		Order("saved_gems.created_at DESC").
		Find(&gems).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return gems, nil
}

func (r *gemRepository) Update(ctx context.Context, gem *models.Gem) error {
	if err := r.db.WithContext(ctx).Save(gem).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGem(ctx, gem.ID)
	return nil
}

func (r *gemRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Gem{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Gem", id)
	}
	cache.InvalidateGem(ctx, id)
	return nil
}

// UpsertVote records a vote, replacing any previous vote by the same user
// on the same gem. Voting the same direction twice is a no-op overwrite.
func (r *gemRepository) UpsertVote(ctx context.Context, userID, gemID uint, voteType string) error {
	vote := models.Vote{Type: voteType, GemID: gemID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "gem_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type"}),
		}).
		Create(&vote).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SaveGem bookmarks a gem for a user. Saving twice is idempotent.
func (r *gemRepository) SaveGem(ctx context.Context, userID, gemID uint) error {
	saved := models.SavedGem{GemID: gemID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UnsaveGem removes a bookmark. Removing a bookmark that does not exist
// is a no-op.
func (r *gemRepository) UnsaveGem(ctx context.Context, userID, gemID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gem_id = ?", userID, gemID).
		Delete(&models.SavedGem{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
