package feed

import (
	"math"
	"time"

	"andaMarket/domain"
)

// Metric extractors: pure functions of (product, reference time) producing
// normalized sub-scores in [0, 1]. A product whose analytics row is missing
// or partially loaded still gets a conservative score; absent counters are
// treated as zero, never as an error.

func daysSince(t time.Time, now time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	d := now.Sub(t).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SalesVelocity scales daily sales so that 0.1 sales/day saturates the signal.
func SalesVelocity(p domain.Product, now time.Time) float64 {
	sales := 0.0
	if p.Analytics != nil {
		sales = float64(p.Analytics.SalesCount)
	}
	daysActive := daysSince(p.CreatedAt, now)
	if daysActive < 1 {
		daysActive = 1
	}
	return math.Min(1, sales/daysActive*10)
}

// RatingQuality blends the normalized star rating with a review-volume bonus
// capped at 0.2 (50 reviews saturate the bonus).
func RatingQuality(p domain.Product) float64 {
	bonus := math.Min(0.2, float64(p.ReviewCount)/50)
	return math.Min(1, p.AverageRating/5+bonus)
}

// EngagementRate weighs cart additions twice and purchases five times
// relative to views.
func EngagementRate(p domain.Product) float64 {
	if p.Analytics == nil {
		return 0
	}
	views := float64(p.Analytics.Views)
	if views < 1 {
		views = 1
	}
	interactions := float64(p.Analytics.CartAdditions)*2 + float64(p.Analytics.Purchases)*5
	return math.Min(1, interactions/views)
}

// ProfitMargin falls back to costRatio-of-price when the product has no
// explicit cost. A non-positive price yields zero.
func ProfitMargin(p domain.Product, costRatio float64) float64 {
	if p.Price <= 0 {
		return 0
	}
	if costRatio <= 0 {
		costRatio = DefaultCostRatio
	}
	cost := p.CostPrice
	if cost <= 0 {
		cost = p.Price * costRatio
	}
	return clamp01((p.Price - cost) / p.Price)
}

// StockScore rewards healthy stock levels: zero stock scores 0, near-empty
// shelves 0.3, overstock flattens at 0.7.
func StockScore(p domain.Product, optimalStock int) float64 {
	if optimalStock <= 0 {
		optimalStock = defaultOptimalStock
	}
	switch {
	case p.StockQuantity == 0:
		return 0
	case p.StockQuantity < 5:
		return 0.3
	case p.StockQuantity > optimalStock:
		return 0.7
	default:
		return float64(p.StockQuantity) / float64(optimalStock)
	}
}

// FreshnessScore decays linearly over the 90-day window after listing.
func FreshnessScore(p domain.Product, now time.Time) float64 {
	daysOld := daysSince(p.CreatedAt, now)
	return clamp01((freshnessWindow - daysOld) / freshnessWindow)
}
