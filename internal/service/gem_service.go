// Package service implements the application's business logic.
package service

import (
	"context"
	"sort"
	"strings"

	"hiddengems/internal/geo"
	"hiddengems/internal/geocode"
	"hiddengems/internal/models"
	"hiddengems/internal/observability"
	"hiddengems/internal/repository"
	"hiddengems/internal/validation"
)

// MaxDistanceKm is the radius around a resolved target location outside
// of which gems are dropped from listings.
const MaxDistanceKm = 50.0

// Listing sort keys.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortTitle      = "title"
	SortRating     = "rating"
	SortPopularity = "popularity"
	SortDistance   = "distance"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Geocoder resolves a free-form place name to coordinates. A nil result
// with a nil error means the place could not be resolved.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (*geocode.Result, error)
}

type GemService struct {
	gemRepo  repository.GemRepository
	geocoder Geocoder
}

type CreateGemInput struct {
	UserID      uint
	Title       string
	Description string
	Category    string
	Latitude    float64
	Longitude   float64
	Images      []string
	Location    string
}

type UpdateGemInput struct {
	UserID      uint
	GemID       uint
	Title       *string
	Description *string
	Category    *string
	Latitude    *float64
	Longitude   *float64
	Images      []string
	Location    *string
}

type ListGemsInput struct {
	Search        string
	Category      string
	City          string
	Sort          string
	UserLat       *float64
	UserLng       *float64
	Page          int
	Limit         int
	CurrentUserID uint
}

// ListGemsResult is the paginated listing payload.
type ListGemsResult struct {
	Gems        []models.Gem    `json:"gems"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	CityCenter  *geo.Coordinate `json:"cityCenter"`
}

func NewGemService(gemRepo repository.GemRepository, geocoder Geocoder) *GemService {
	return &GemService{
		gemRepo:  gemRepo,
		geocoder: geocoder,
	}
}

// ListGems runs the listing pipeline: database-level search and category
// filtering, target location resolution, per-gem stat and distance
// computation, the distance cutoff, in-memory sorting, and pagination.
func (s *GemService) ListGems(ctx context.Context, in ListGemsInput) (*ListGemsResult, error) {
	gems, err := s.gemRepo.ListFiltered(ctx, in.Search, in.Category)
	if err != nil {
		return nil, err
	}

	target := s.resolveTarget(ctx, in)

	filtered := make([]models.Gem, 0, len(gems))
	for i := range gems {
		gem := gems[i]
		populateGemStats(&gem, in.CurrentUserID)

		if target != nil {
			d := geo.Distance(target.Lat, target.Lon, gem.Latitude, gem.Longitude)
			if d > MaxDistanceKm {
				continue
			}
			gem.Distance = &d
		}

		// Listings carry aggregates only; review bodies belong to the
		// detail view.
		gem.Reviews = nil
		filtered = append(filtered, gem)
	}

	observability.GemListResults.Observe(float64(len(filtered)))

	sortGems(filtered, resolveSort(in.Sort, target != nil))

	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	totalPages := (len(filtered) + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > len(filtered) {
		start, end = 0, 0
	} else if end > len(filtered) {
		end = len(filtered)
	}

	var cityCenter *geo.Coordinate
	if target != nil {
		cityCenter = &geo.Coordinate{Lat: target.Lat, Lon: target.Lon}
	}

	return &ListGemsResult{
		Gems:        filtered[start:end],
		TotalPages:  totalPages,
		CurrentPage: page,
		CityCenter:  cityCenter,
	}, nil
}

// resolveTarget picks the listing's reference location. Explicit
// coordinates win over a city name; an unresolvable city degrades to no
// target rather than failing the listing.
func (s *GemService) resolveTarget(ctx context.Context, in ListGemsInput) *geo.Coordinate {
	if in.UserLat != nil && in.UserLng != nil {
		return &geo.Coordinate{Lat: *in.UserLat, Lon: *in.UserLng}
	}

	if strings.TrimSpace(in.City) == "" || s.geocoder == nil {
		return nil
	}

	result, err := s.geocoder.Lookup(ctx, in.City)
	if err != nil || result == nil {
		return nil
	}
	c := result.Coordinate()
	return &c
}

// resolveSort maps the requested sort key to an effective one. An empty
// key defaults to distance when a target location exists, newest
// otherwise; a distance sort without a target falls back to newest.
func resolveSort(requested string, hasTarget bool) string {
	switch requested {
	case SortNewest, SortOldest, SortTitle, SortRating, SortPopularity:
		return requested
	case SortDistance:
		if hasTarget {
			return SortDistance
		}
		return SortNewest
	default:
		if hasTarget {
			return SortDistance
		}
		return SortNewest
	}
}

func sortGems(gems []models.Gem, key string) {
	switch key {
	case SortOldest:
		sort.SliceStable(gems, func(i, j int) bool {
			return gems[i].CreatedAt.Before(gems[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(gems, func(i, j int) bool {
			return strings.ToLower(gems[i].Title) < strings.ToLower(gems[j].Title)
		})
	case SortRating:
		sort.SliceStable(gems, func(i, j int) bool {
			return gems[i].AverageRating > gems[j].AverageRating
		})
	case SortPopularity:
		sort.SliceStable(gems, func(i, j int) bool {
			return gems[i].Score > gems[j].Score
		})
	case SortDistance:
		sort.SliceStable(gems, func(i, j int) bool {
			if gems[i].Distance == nil || gems[j].Distance == nil {
				return gems[j].Distance == nil && gems[i].Distance != nil
			}
			return *gems[i].Distance < *gems[j].Distance
		})
	default: // SortNewest
		sort.SliceStable(gems, func(i, j int) bool {
			return gems[i].CreatedAt.After(gems[j].CreatedAt)
		})
	}
}

// populateGemStats fills the derived fields from preloaded associations.
// currentUserID zero means an anonymous viewer.
func populateGemStats(gem *models.Gem, currentUserID uint) {
	gem.ReviewCount = len(gem.Reviews)
	if gem.ReviewCount > 0 {
		total := 0
		for _, review := range gem.Reviews {
			total += review.Rating
		}
		gem.AverageRating = float64(total) / float64(gem.ReviewCount)
	}

	gem.Upvotes, gem.Downvotes = 0, 0
	gem.UserVote = nil
	for _, vote := range gem.Votes {
		switch vote.Type {
		case models.VoteUp:
			gem.Upvotes++
		case models.VoteDown:
			gem.Downvotes++
		}
		if currentUserID != 0 && vote.UserID == currentUserID {
			voteType := vote.Type
			gem.UserVote = &voteType
		}
	}
	gem.Score = gem.Upvotes - gem.Downvotes

	gem.IsSaved = false
	if currentUserID != 0 {
		for _, saved := range gem.SavedBy {
			if saved.UserID == currentUserID {
				gem.IsSaved = true
				break
			}
		}
	}
}

// GetGem assembles the detail view of a single gem for the given viewer.
func (s *GemService) GetGem(ctx context.Context, gemID, currentUserID uint) (*models.Gem, error) {
	gem, err := s.gemRepo.GetByIDWithDetails(ctx, gemID)
	if err != nil {
		return nil, err
	}
	populateGemStats(gem, currentUserID)
	return gem, nil
}

func (s *GemService) CreateGem(ctx context.Context, in CreateGemInput) (*models.Gem, error) {
	if err := validation.ValidateGemTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}
	if err := validation.ValidateCategory(category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	gem := &models.Gem{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    category,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Images:      in.Images,
		Location:    strings.TrimSpace(in.Location),
		UserID:      in.UserID,
	}
	if err := s.gemRepo.Create(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

func (s *GemService) UpdateGem(ctx context.Context, in UpdateGemInput) (*models.Gem, error) {
	gem, err := s.gemRepo.GetByID(ctx, in.GemID)
	if err != nil {
		return nil, err
	}
	if gem.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own gems")
	}

	if in.Title != nil {
		if err := validation.ValidateGemTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		gem.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, models.NewValidationError("Description is required")
		}
		gem.Description = *in.Description
	}
	if in.Category != nil {
		if err := validation.ValidateCategory(*in.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		gem.Category = *in.Category
	}
	if in.Latitude != nil || in.Longitude != nil {
		lat, lng := gem.Latitude, gem.Longitude
		if in.Latitude != nil {
			lat = *in.Latitude
		}
		if in.Longitude != nil {
			lng = *in.Longitude
		}
		if err := validation.ValidateCoordinates(lat, lng); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		gem.Latitude, gem.Longitude = lat, lng
	}
	if in.Images != nil {
		gem.Images = in.Images
	}
	if in.Location != nil {
		gem.Location = strings.TrimSpace(*in.Location)
	}

	if err := s.gemRepo.Update(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

func (s *GemService) DeleteGem(ctx context.Context, userID, gemID uint) error {
	gem, err := s.gemRepo.GetByID(ctx, gemID)
	if err != nil {
		return err
	}
	if gem.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own gems")
	}
	return s.gemRepo.Delete(ctx, gemID)
}

// VoteGem casts or replaces the user's vote on a gem and returns the
// refreshed detail view.
func (s *GemService) VoteGem(ctx context.Context, userID, gemID uint, voteType string) (*models.Gem, error) {
	if err := validation.ValidateVoteType(voteType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.gemRepo.GetByID(ctx, gemID); err != nil {
		return nil, err
	}

	if err := s.gemRepo.UpsertVote(ctx, userID, gemID, voteType); err != nil {
		return nil, err
	}
	observability.VotesCast.WithLabelValues(voteType).Inc()

	return s.GetGem(ctx, gemID, userID)
}

func (s *GemService) SaveGem(ctx context.Context, userID, gemID uint) error {
	if _, err := s.gemRepo.GetByID(ctx, gemID); err != nil {
		return err
	}
	return s.gemRepo.SaveGem(ctx, userID, gemID)
}

func (s *GemService) UnsaveGem(ctx context.Context, userID, gemID uint) error {
	if _, err := s.gemRepo.GetByID(ctx, gemID); err != nil {
		return err
	}
	return s.gemRepo.UnsaveGem(ctx, userID, gemID)
}
