package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"andaMarket/domain"
	"andaMarket/pkg/logger"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	FindPool(ctx context.Context, category, subcategory string) ([]domain.Product, error)
}

type CampaignRepository interface {
	FindActive(ctx context.Context) ([]domain.Campaign, error)
}

type ServiceConfig struct {
	Weights         Weights
	Pagination      PaginationConfig
	CostRatio       float64
	OptimalStock    int
	CampaignTimeout time.Duration
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Weights:         DefaultWeights(),
		Pagination:      DefaultPaginationConfig(),
		CostRatio:       DefaultCostRatio,
		OptimalStock:    defaultOptimalStock,
		CampaignTimeout: 2 * time.Second,
	}
}

// ---- Usecase / Service ----

// FeedService runs the full pipeline: fetch pool and campaigns, score,
// compose sections, decide pagination. Scoring and composition themselves
// are pure and CPU-only; the only suspension points are the repository
// fetches at the boundary.
type FeedService struct {
	productRepo  ProductRepository
	campaignRepo CampaignRepository
	tracker      *Tracker
	composer     *Composer
	cfg          ServiceConfig
}

func NewFeedService(
	productRepo ProductRepository,
	campaignRepo CampaignRepository,
	prefStore UserPreferenceStore,
	cfg ServiceConfig,
	rng *rand.Rand,
) *FeedService {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.CostRatio <= 0 {
		cfg.CostRatio = DefaultCostRatio
	}
	if cfg.OptimalStock <= 0 {
		cfg.OptimalStock = defaultOptimalStock
	}
	if cfg.CampaignTimeout <= 0 {
		cfg.CampaignTimeout = 2 * time.Second
	}
	if prefStore == nil {
		prefStore = NewMemoryPreferenceStore()
	}
	return &FeedService{
		productRepo:  productRepo,
		campaignRepo: campaignRepo,
		tracker:      NewTracker(prefStore),
		composer:     NewComposer(cfg.Pagination, cfg.Weights, rng),
		cfg:          cfg,
	}
}

func intentFor(category, subcategory string) string {
	switch {
	case subcategory != "":
		return IntentSubcategory
	case category != "":
		return IntentCategory
	default:
		return IntentGeneral
	}
}

// buildScoringContext derives the market averages from the current pool and
// folds in the campaign product ids.
func (s *FeedService) buildScoringContext(
	req domain.ComposeFeedRequest,
	pool []domain.Product,
	campaigns []domain.Campaign,
	now time.Time,
) ScoringContext {
	var totalViews, totalRevenue float64
	var totalPurchases int
	for _, p := range pool {
		if p.Analytics == nil {
			continue
		}
		totalViews += float64(p.Analytics.Views)
		totalRevenue += p.Analytics.Revenue
		totalPurchases += p.Analytics.Purchases
	}

	sctx := ScoringContext{
		Intent:       intentFor(req.Category, req.Subcategory),
		UserID:       req.UserID,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		OptimalStock: s.cfg.OptimalStock,
		CostRatio:    s.cfg.CostRatio,
		Now:          now,
	}
	if n := len(pool); n > 0 {
		sctx.AvgViews = totalViews / float64(n)
		sctx.AvgRevenue = totalRevenue / float64(n)
	}
	if totalPurchases > 0 {
		sctx.AvgOrderValue = totalRevenue / float64(totalPurchases)
	}

	if len(campaigns) > 0 {
		ids := make(map[uint64]struct{})
		for _, c := range campaigns {
			for _, pid := range c.ProductIDs {
				ids[pid] = struct{}{}
			}
		}
		sctx.CampaignProductIDs = ids
	}
	return sctx
}

// loadCampaigns fetches the active campaign list under a short timeout. Any
// failure degrades to "no campaigns" with a warning; a stalled campaign
// store must never block composition.
func (s *FeedService) loadCampaigns(ctx context.Context) ([]domain.Campaign, []domain.FeedWarning) {
	if s.campaignRepo == nil {
		return nil, nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.cfg.CampaignTimeout)
	defer cancel()

	campaigns, err := s.campaignRepo.FindActive(cctx)
	if err != nil {
		CampaignFallbacksTotal.Inc()
		logger.Warn("campaign fetch failed, composing without campaigns",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return nil, []domain.FeedWarning{
			warning(WarnCampaignsUnavailable, "campaigns unavailable, featured boosts reduced"),
		}
	}
	return campaigns, nil
}

// ComposeFeed builds one page of carousel sections for the request. Partial
// upstream failures (campaigns) degrade silently into warnings; an empty or
// unfetchable pool is a typed composition failure.
func (s *FeedService) ComposeFeed(ctx context.Context, req domain.ComposeFeedRequest) (*domain.ComposeFeedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req.Page < 1 {
		req.Page = 1
	}

	start := time.Now()

	pool, err := s.productRepo.FindPool(ctx, req.Category, req.Subcategory)
	if err != nil {
		return nil, composeFailed("pool fetch", err)
	}
	if len(pool) == 0 {
		return nil, composeFailed("pool fetch", ErrEmptyPool)
	}

	campaigns, warnings := s.loadCampaigns(ctx)
	sctx := s.buildScoringContext(req, pool, campaigns, time.Now())

	logger.Debug("feed_compose",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", req.UserID,
		"intent", sctx.Intent,
		"page", req.Page,
		"pool_size", len(pool),
		"campaigns", len(campaigns),
	)

	sections, err := s.composer.ComposePage(pool, sctx, req.Page)
	if err != nil {
		return nil, composeFailed("compose", err)
	}

	cfg := s.composer.Config()
	hasNext := req.Page*cfg.CarouselsPerLoad < ceilDiv(len(pool), cfg.ProductsPerCarousel)

	ComposeRequestsTotal.WithLabelValues(sctx.Intent).Inc()
	ComposeDuration.Observe(time.Since(start).Seconds())

	return &domain.ComposeFeedResponse{
		Sections:    sections,
		Page:        req.Page,
		HasNextPage: hasNext,
		Warnings:    warnings,
	}, nil
}

// NewBrowsingSession fetches the pool once and returns a paginator bound to
// it. Concurrent load-more triggers on the same session are serialized by
// the paginator's loading guard.
func (s *FeedService) NewBrowsingSession(ctx context.Context, req domain.ComposeFeedRequest) (*Paginator, error) {
	pool, err := s.productRepo.FindPool(ctx, req.Category, req.Subcategory)
	if err != nil {
		return nil, composeFailed("pool fetch", err)
	}
	if len(pool) == 0 {
		return nil, composeFailed("pool fetch", ErrEmptyPool)
	}

	campaigns, _ := s.loadCampaigns(ctx)
	sctx := s.buildScoringContext(req, pool, campaigns, time.Now())

	compose := func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		return s.composer.ComposePage(pool, sctx, page)
	}
	return NewPaginator(s.composer.Config(), len(pool), compose), nil
}

// RecordInteraction appends one interaction to the user's preference log.
func (s *FeedService) RecordInteraction(ctx context.Context, userID uint, event domain.InteractionEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return s.tracker.RecordInteraction(ctx, userID, event)
}

// PersonalizedFeed re-ranks the scored pool by the user's category affinity.
// A failing preference store degrades to the unpersonalized ranking plus a
// warning rather than an error.
func (s *FeedService) PersonalizedFeed(
	ctx context.Context,
	userID uint,
	req domain.ComposeFeedRequest,
	limit int,
) ([]domain.ScoredProduct, []domain.FeedWarning, error) {
	if limit <= 0 {
		limit = recommendedLimit
	}

	pool, err := s.productRepo.FindPool(ctx, req.Category, req.Subcategory)
	if err != nil {
		return nil, nil, composeFailed("pool fetch", err)
	}
	if len(pool) == 0 {
		return nil, nil, composeFailed("pool fetch", ErrEmptyPool)
	}

	campaigns, warnings := s.loadCampaigns(ctx)
	sctx := s.buildScoringContext(req, pool, campaigns, time.Now())
	sctx.UserID = userID

	affinity, err := s.tracker.CategoryAffinity(ctx, userID)
	if err != nil {
		logger.Warn("preference read failed, serving unpersonalized ranking",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", userID,
			"error", err,
		)
		warnings = append(warnings, warning(WarnPreferencesUnavailable, "preference store unavailable"))
		affinity = nil
	}

	scored := ScorePool(pool, sctx, s.cfg.Weights)
	ranked := PersonalizedProducts(scored, affinity)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, warnings, nil
}

// DebugScores returns the full per-product breakdowns for inspection.
func (s *FeedService) DebugScores(ctx context.Context, req domain.ComposeFeedRequest, limit int) ([]domain.ScoredProduct, error) {
	if limit <= 0 {
		limit = recommendedLimit
	}

	pool, err := s.productRepo.FindPool(ctx, req.Category, req.Subcategory)
	if err != nil {
		return nil, composeFailed("pool fetch", err)
	}

	campaigns, _ := s.loadCampaigns(ctx)
	sctx := s.buildScoringContext(req, pool, campaigns, time.Now())

	ranked := RecommendedProducts(pool, sctx, s.cfg.Weights)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
