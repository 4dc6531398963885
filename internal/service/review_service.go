package service

import (
	"context"
	"strings"

	"hiddengems/internal/models"
	"hiddengems/internal/repository"
	"hiddengems/internal/validation"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	gemRepo    repository.GemRepository
}

type CreateReviewInput struct {
	UserID  uint
	GemID   uint
	Content string
	Rating  int
}

func NewReviewService(reviewRepo repository.ReviewRepository, gemRepo repository.GemRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		gemRepo:    gemRepo,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if _, err := s.gemRepo.GetByID(ctx, in.GemID); err != nil {
		return nil, err
	}

	review := &models.Review{
		Content: strings.TrimSpace(in.Content),
		Rating:  in.Rating,
		GemID:   in.GemID,
		UserID:  in.UserID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, gemID uint) ([]models.Review, error) {
	if _, err := s.gemRepo.GetByID(ctx, gemID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByGemID(ctx, gemID)
}

// DeleteReview removes a review. Only its author may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own reviews")
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
