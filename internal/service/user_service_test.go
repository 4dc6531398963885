package service

import (
	"context"
	"testing"

	"hiddengems/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

func TestUserService_GetProfile(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Alice Explorer"}, nil
	}

	gemRepo := noopGemRepo()
	gemRepo.getByUserIDFn = func(_ context.Context, _ uint) ([]models.Gem, error) {
		return []models.Gem{
			{
				ID:      1,
				UserID:  5,
				Reviews: []models.Review{{Rating: 4}, {Rating: 2}},
				Votes:   []models.Vote{{Type: models.VoteUp, UserID: 9}},
			},
		}, nil
	}
	gemRepo.getSavedByUserIDFn = func(_ context.Context, _ uint) ([]models.Gem, error) {
		return []models.Gem{{ID: 2, UserID: 8, SavedBy: []models.SavedGem{{GemID: 2, UserID: 5}}}}, nil
	}

	svc := NewUserService(userRepo, gemRepo)

	profile, err := svc.GetProfile(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Equal(t, "Alice Explorer", profile.User.Name)

	require.Len(t, profile.Gems, 1)
	assert.Equal(t, 2, profile.Gems[0].ReviewCount)
	assert.InDelta(t, 3.0, profile.Gems[0].AverageRating, 1e-9)
	assert.Equal(t, 1, profile.Gems[0].Score)
	assert.Nil(t, profile.Gems[0].Reviews)

	require.Len(t, profile.SavedGems, 1)
	assert.True(t, profile.SavedGems[0].IsSaved)
}

func TestUserService_GetProfile_ViewerPerspective(t *testing.T) {
	t.Parallel()

	// Owner 5 voted UP on their own gem and saved it. userVote and isSaved
	// must reflect the caller looking at the profile, not the owner.
	gemRepo := noopGemRepo()
	gemRepo.getByUserIDFn = func(_ context.Context, _ uint) ([]models.Gem, error) {
		return []models.Gem{
			{
				ID:      1,
				UserID:  5,
				Votes:   []models.Vote{{Type: models.VoteUp, UserID: 5}, {Type: models.VoteDown, UserID: 9}},
				SavedBy: []models.SavedGem{{GemID: 1, UserID: 5}},
			},
		}, nil
	}
	svc := NewUserService(noopUserRepo(), gemRepo)

	anon, err := svc.GetProfile(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, anon.Gems, 1)
	assert.Nil(t, anon.Gems[0].UserVote)
	assert.False(t, anon.Gems[0].IsSaved)
	assert.Equal(t, 1, anon.Gems[0].Upvotes)
	assert.Equal(t, 1, anon.Gems[0].Downvotes)

	other, err := svc.GetProfile(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, other.Gems, 1)
	require.NotNil(t, other.Gems[0].UserVote)
	assert.Equal(t, models.VoteDown, *other.Gems[0].UserVote)
	assert.False(t, other.Gems[0].IsSaved)
}

func TestUserService_GetProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewUserService(userRepo, noopGemRepo())

	_, err := svc.GetProfile(context.Background(), 99, 0)
	assertNotFoundError(t, err)
}
