package feed

// Weights is the fixed convex combination applied to the six sub-scores plus
// the campaign boost. Ownership and category boosts are added outside the
// combination, so a final score above 1 is expected, not a bug.
type Weights struct {
	SalesVelocity  float64
	RatingQuality  float64
	EngagementRate float64
	ProfitMargin   float64
	StockScore     float64
	FreshnessScore float64
	CampaignBoost  float64
}

type PaginationConfig struct {
	ProductsPerCarousel int
	CarouselsPerLoad    int
}

const (
	defaultWSalesVelocity  = 0.25
	defaultWRatingQuality  = 0.20
	defaultWEngagementRate = 0.15
	defaultWProfitMargin   = 0.15
	defaultWStockScore     = 0.10
	defaultWFreshnessScore = 0.10
	defaultWCampaignBoost  = 0.05

	// additive context boosts
	ownershipBoost        = 0.10
	categoryRelevanceBoost = 0.05

	// DefaultCostRatio is the assumed cost fraction of price when a product
	// carries no explicit cost.
	DefaultCostRatio = 0.6

	defaultOptimalStock = 50

	defaultProductsPerCarousel = 8
	defaultCarouselsPerLoad    = 3

	recommendedLimit   = 20
	trendingLimit      = 20
	trendingMultiplier = 1.5

	minDiscountPercentage = 20.0
	discountTolerance     = 5.0

	// freshness window in days
	freshnessWindow = 90.0

	// per-category affinity contribution to the personalized score
	affinityWeight = 0.1
)

func DefaultWeights() Weights {
	return Weights{
		SalesVelocity:  defaultWSalesVelocity,
		RatingQuality:  defaultWRatingQuality,
		EngagementRate: defaultWEngagementRate,
		ProfitMargin:   defaultWProfitMargin,
		StockScore:     defaultWStockScore,
		FreshnessScore: defaultWFreshnessScore,
		CampaignBoost:  defaultWCampaignBoost,
	}
}

func DefaultPaginationConfig() PaginationConfig {
	return PaginationConfig{
		ProductsPerCarousel: defaultProductsPerCarousel,
		CarouselsPerLoad:    defaultCarouselsPerLoad,
	}
}
