package server

import (
	"hiddengems/internal/models"
	"hiddengems/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGems handles GET /api/gems with search, category, city, sort and
// pagination query parameters.
func (s *Server) GetGems(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in := service.ListGemsInput{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		City:          c.Query("city"),
		Sort:          c.Query("sort"),
		UserLat:       queryFloat(c, "userLat"),
		UserLng:       queryFloat(c, "userLng"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
		CurrentUserID: s.optionalUserID(c),
	}

	result, err := s.gemService.ListGems(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetGem handles GET /api/gems/:id
func (s *Server) GetGem(c *fiber.Ctx) error {
	ctx := c.UserContext()

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	gem, err := s.gemService.GetGem(ctx, gemID, s.optionalUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(gem)
}

type gemRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Images      []string `json:"images"`
	Location    *string  `json:"location"`
}

// CreateGem handles POST /api/gems
func (s *Server) CreateGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req gemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == nil || req.Description == nil || req.Latitude == nil || req.Longitude == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title, description, latitude, and longitude are required"))
	}

	in := service.CreateGemInput{
		UserID:      userID,
		Title:       *req.Title,
		Description: *req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Images:      req.Images,
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Location != nil {
		in.Location = *req.Location
	}

	gem, err := s.gemService.CreateGem(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(gem)
}

// UpdateGem handles PUT /api/gems/:id
func (s *Server) UpdateGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req gemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	gem, err := s.gemService.UpdateGem(ctx, service.UpdateGemInput{
		UserID:      userID,
		GemID:       gemID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Images:      req.Images,
		Location:    req.Location,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(gem)
}

// DeleteGem handles DELETE /api/gems/:id
func (s *Server) DeleteGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.gemService.DeleteGem(ctx, userID, gemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Gem deleted"})
}

// VoteGem handles POST /api/gems/:id/vote
func (s *Server) VoteGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	gem, err := s.gemService.VoteGem(ctx, userID, gemID, req.Type)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(gem)
}

// SaveGem handles POST /api/gems/:id/save
func (s *Server) SaveGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.gemService.SaveGem(ctx, userID, gemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Gem saved"})
}

// UnsaveGem handles DELETE /api/gems/:id/save
func (s *Server) UnsaveGem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	gemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.gemService.UnsaveGem(ctx, userID, gemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Gem unsaved"})
}
