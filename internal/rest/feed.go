package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"andaMarket/business/feed"
	"andaMarket/domain"
	"andaMarket/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FeedHandler struct {
		validate    *validator.Validate
		feedService FeedService
		timeout     time.Duration
	}

	FeedService interface {
		ComposeFeed(ctx context.Context, req domain.ComposeFeedRequest) (*domain.ComposeFeedResponse, error)
		PersonalizedFeed(ctx context.Context, userID uint, req domain.ComposeFeedRequest, limit int) ([]domain.ScoredProduct, []domain.FeedWarning, error)
		DebugScores(ctx context.Context, req domain.ComposeFeedRequest, limit int) ([]domain.ScoredProduct, error)
		RecordInteraction(ctx context.Context, userID uint, event domain.InteractionEvent) error
	}

	FeedQuery struct {
		Page        int    `query:"page"`
		Category    string `query:"category"`
		Subcategory string `query:"subcategory"`
		N           int    `query:"n"`
	}

	InteractionRequest struct {
		CategorySlug string `json:"category_slug" validate:"required"`
		EventType    string `json:"event_type" validate:"required,oneof=view click atc purchase"`
	}
)

func NewFeedHandler(svc FeedService) *FeedHandler {
	return &FeedHandler{
		validate:    validator.New(),
		feedService: svc,
		timeout:     10 * time.Second,
	}
}

func (h *FeedHandler) userID(c echo.Context) uint {
	if uid, ok := c.Get("user_id").(uint); ok {
		return uid
	}
	return 0
}

// GET /api/v1/feed?page=1&category=electronics
func (h *FeedHandler) ComposeFeed(c echo.Context) error {
	started := time.Now()

	var q FeedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Page < 1 {
		q.Page = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resp, err := h.feedService.ComposeFeed(ctx, domain.ComposeFeedRequest{
		UserID:      h.userID(c),
		Page:        q.Page,
		Category:    q.Category,
		Subcategory: q.Subcategory,
	})
	if err != nil {
		if errors.Is(err, feed.ErrEmptyPool) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no products available for this context"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.FeedRequestsTotal.Inc()
	metrics.FeedRequestLatency.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

// GET /api/v1/feed/personalized?n=20
func (h *FeedHandler) Personalized(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q FeedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ranked, warnings, err := h.feedService.PersonalizedFeed(ctx, userID, domain.ComposeFeedRequest{
		Category:    q.Category,
		Subcategory: q.Subcategory,
	}, q.N)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyPool) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no products available for this context"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"products": ranked,
		"warnings": warnings,
	}))
}

// POST /api/v1/feed/events
func (h *FeedHandler) RecordInteraction(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event := domain.InteractionEvent{
		CategorySlug: req.CategorySlug,
		EventType:    req.EventType,
		CreatedAt:    time.Now(),
	}

	if err := h.feedService.RecordInteraction(c.Request().Context(), userID, event); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}

// GET /api/v1/feed/debug?category=electronics&n=10
func (h *FeedHandler) DebugScores(c echo.Context) error {
	var q FeedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	scored, err := h.feedService.DebugScores(ctx, domain.ComposeFeedRequest{
		UserID:      h.userID(c),
		Category:    q.Category,
		Subcategory: q.Subcategory,
	}, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(scored))
}
