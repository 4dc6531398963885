package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hiddengems/internal/models"
	"hiddengems/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewRepository is a mock of the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByGemID(ctx context.Context, gemID uint) ([]models.Review, error) {
	args := m.Called(ctx, gemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newReviewTestApp(reviewRepo *MockReviewRepository, gemRepo *MockGemRepository) (*fiber.App, *Server) {
	s := &Server{
		config:     testConfig(),
		gemRepo:    gemRepo,
		reviewRepo: reviewRepo,
	}
	s.reviewService = service.NewReviewService(reviewRepo, gemRepo)

	app := fiber.New()
	app.Get("/api/gems/:id/reviews", s.GetReviews)
	app.Post("/api/gems/:id/reviews", s.AuthRequired(), s.CreateReview)
	app.Delete("/api/reviews/:id", s.AuthRequired(), s.DeleteReview)
	return app, s
}

func TestGetReviews(t *testing.T) {
	gemRepo := new(MockGemRepository)
	gemRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Gem{ID: 1}, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("ListByGemID", mock.Anything, uint(1)).Return([]models.Review(nil), nil)

	app, _ := newReviewTestApp(reviewRepo, gemRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/gems/1/reviews", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// No reviews serializes as an empty array, not null.
	var reviews []models.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reviews))
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestCreateReview(t *testing.T) {
	gemRepo := new(MockGemRepository)
	gemRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Gem{ID: 1}, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	app, s := newReviewTestApp(reviewRepo, gemRepo)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"content": "Worth the detour", "rating": 5})
		req := httptest.NewRequest(http.MethodPost, "/api/gems/1/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", authHeader(t, s, 7))
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var review models.Review
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&review))
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, uint(7), review.UserID)
	})

	t.Run("Rating Out Of Scale", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"content": "meh", "rating": 9})
		req := httptest.NewRequest(http.MethodPost, "/api/gems/1/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", authHeader(t, s, 7))
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Requires Auth", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"content": "ok", "rating": 4})
		req := httptest.NewRequest(http.MethodPost, "/api/gems/1/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeleteReview(t *testing.T) {
	gemRepo := new(MockGemRepository)
	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Review{ID: 5, UserID: 7, GemID: 1}, nil)
	reviewRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	app, s := newReviewTestApp(reviewRepo, gemRepo)

	t.Run("Author Deletes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/reviews/5", nil)
		req.Header.Set("Authorization", authHeader(t, s, 7))
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Non Author Forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/reviews/5", nil)
		req.Header.Set("Authorization", authHeader(t, s, 2))
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
