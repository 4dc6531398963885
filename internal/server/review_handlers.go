package server

import (
	"hiddengems/internal/models"
	"hiddengems/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /api/gems/:id/reviews (public)
func (s *Server) GetReviews(c *fiber.Ctx) error {
	ctx := c.UserContext()

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reviews, err := s.reviewService.ListReviews(ctx, gemID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return c.JSON(reviews)
}

// CreateReview handles POST /api/gems/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(ctx, service.CreateReviewInput{
		UserID:  userID,
		GemID:   gemID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(ctx, userID, reviewID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
