package service

import (
	"context"

	"hiddengems/internal/models"
	"hiddengems/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	gemRepo  repository.GemRepository
}

// UserProfile is a user together with the gems they submitted and saved.
type UserProfile struct {
	User      *models.User `json:"user"`
	Gems      []models.Gem `json:"gems"`
	SavedGems []models.Gem `json:"savedGems"`
}

func NewUserService(userRepo repository.UserRepository, gemRepo repository.GemRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		gemRepo:  gemRepo,
	}
}

// GetProfile assembles a public user profile. Review and vote aggregates
// are populated on every gem; review bodies are omitted as in listings.
// viewerID is the authenticated caller (0 when anonymous) and drives the
// per-viewer userVote/isSaved fields, which are never the profile owner's.
func (s *UserService) GetProfile(ctx context.Context, userID, viewerID uint) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	gems, err := s.gemRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.gemRepo.GetSavedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range gems {
		populateGemStats(&gems[i], viewerID)
		gems[i].Reviews = nil
	}
	for i := range saved {
		populateGemStats(&saved[i], viewerID)
		saved[i].Reviews = nil
	}

	return &UserProfile{
		User:      user,
		Gems:      gems,
		SavedGems: saved,
	}, nil
}
