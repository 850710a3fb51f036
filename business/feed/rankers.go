package feed

import (
	"sort"

	"andaMarket/domain"
)

// RecommendedProducts scores the whole pool and returns the globally best
// recommendedLimit products, highest score first. Ties keep the original
// relative order of the pool; the stable sort is the defined tie-break.
func RecommendedProducts(pool []domain.Product, sctx ScoringContext, w Weights) []domain.ScoredProduct {
	scored := ScorePool(pool, sctx, w)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Total > scored[j].Breakdown.Total
	})
	if len(scored) > recommendedLimit {
		scored = scored[:recommendedLimit]
	}
	return scored
}

func views(p domain.Product) int {
	if p.Analytics == nil {
		return 0
	}
	return p.Analytics.Views
}

func cartAdditions(p domain.Product) int {
	if p.Analytics == nil {
		return 0
	}
	return p.Analytics.CartAdditions
}

// TrendingProducts keeps products whose view count sits statistically above
// the pool average (more than trendingMultiplier times it), ordered by
// views + 2*cartAdditions descending.
func TrendingProducts(pool []domain.Product, limit int) []domain.Product {
	if len(pool) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = trendingLimit
	}

	totalViews := 0
	for _, p := range pool {
		totalViews += views(p)
	}
	avgViews := float64(totalViews) / float64(len(pool))
	threshold := avgViews * trendingMultiplier

	trending := make([]domain.Product, 0, len(pool))
	for _, p := range pool {
		if float64(views(p)) > threshold {
			trending = append(trending, p)
		}
	}

	sort.SliceStable(trending, func(i, j int) bool {
		si := views(trending[i]) + cartAdditions(trending[i])*2
		sj := views(trending[j]) + cartAdditions(trending[j])*2
		return si > sj
	})

	if len(trending) > limit {
		trending = trending[:limit]
	}
	return trending
}
