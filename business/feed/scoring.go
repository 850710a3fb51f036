package feed

import (
	"math"
	"time"

	"andaMarket/domain"
)

// Intent of a scoring pass.
const (
	IntentGeneral     = "general"
	IntentCategory    = "category"
	IntentSubcategory = "subcategory"
)

// ScoringContext carries everything one scoring pass depends on. It is built
// fresh per request from caller input plus aggregates over the current
// candidate pool, so Score stays a pure function of its explicit arguments.
type ScoringContext struct {
	Intent      string
	UserID      uint
	Category    string
	Subcategory string

	AvgViews      float64
	AvgRevenue    float64
	AvgOrderValue float64
	OptimalStock  int
	CostRatio     float64

	// product ids promoted by an active campaign; they receive the same
	// boost as is_featured listings
	CampaignProductIDs map[uint64]struct{}

	Now time.Time
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func tierFor(total float64) string {
	switch {
	case total >= 0.75:
		return "featured"
	case total >= 0.5:
		return "rising"
	default:
		return "regular"
	}
}

func campaignBoost(p domain.Product, sctx ScoringContext) float64 {
	if p.IsFeatured {
		return 1
	}
	if sctx.CampaignProductIDs != nil {
		if _, ok := sctx.CampaignProductIDs[p.ID]; ok {
			return 1
		}
	}
	return 0
}

// Score computes the full breakdown for one product. Identical inputs always
// yield an identical breakdown, which keeps scoring safe to run in parallel
// across requests.
func Score(p domain.Product, sctx ScoringContext, w Weights) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{
		SalesVelocity:  SalesVelocity(p, sctx.Now),
		RatingQuality:  RatingQuality(p),
		EngagementRate: EngagementRate(p),
		ProfitMargin:   ProfitMargin(p, sctx.CostRatio),
		StockScore:     StockScore(p, sctx.OptimalStock),
		FreshnessScore: FreshnessScore(p, sctx.Now),
		CampaignBoost:  campaignBoost(p, sctx),
	}

	if sctx.UserID != 0 && p.SellerID == sctx.UserID {
		b.OwnershipBoost = ownershipBoost
	}
	if sctx.Intent == IntentCategory && sctx.Category != "" && p.CategorySlug == sctx.Category {
		b.CategoryBoost = categoryRelevanceBoost
	}

	total := b.SalesVelocity*w.SalesVelocity +
		b.RatingQuality*w.RatingQuality +
		b.EngagementRate*w.EngagementRate +
		b.ProfitMargin*w.ProfitMargin +
		b.StockScore*w.StockScore +
		b.FreshnessScore*w.FreshnessScore +
		b.CampaignBoost*w.CampaignBoost +
		b.OwnershipBoost +
		b.CategoryBoost

	b.Total = round2(total)
	b.Tier = tierFor(b.Total)
	return b
}

// ScorePool scores every product in the pool, preserving input order.
func ScorePool(pool []domain.Product, sctx ScoringContext, w Weights) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(pool))
	for _, p := range pool {
		out = append(out, domain.ScoredProduct{
			Product:   p,
			Breakdown: Score(p, sctx, w),
		})
	}
	return out
}
