package domain

// ScoredProduct pairs a product with the breakdown attached for one response.
type ScoredProduct struct {
	Product           Product        `json:"product"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
	PersonalizedScore float64        `json:"personalized_score,omitempty"`
}

// ScoreBreakdown is the full output of scoring one product. Sub-scores are
// clamped to [0,1]; Total is the weighted sum plus additive boosts, so it can
// legitimately exceed 1.
type ScoreBreakdown struct {
	SalesVelocity  float64 `json:"sales_velocity"`
	RatingQuality  float64 `json:"rating_quality"`
	EngagementRate float64 `json:"engagement_rate"`
	ProfitMargin   float64 `json:"profit_margin"`
	StockScore     float64 `json:"stock_score"`
	FreshnessScore float64 `json:"freshness_score"`
	CampaignBoost  float64 `json:"campaign_boost"`
	OwnershipBoost float64 `json:"ownership_boost"`
	CategoryBoost  float64 `json:"category_boost"`
	Total          float64 `json:"total"`
	Tier           string  `json:"tier"`
}

// CarouselSection is one labeled shelf of ranked products, sized at most
// ProductsPerCarousel. Sections are created per page request and never
// mutated afterwards.
type CarouselSection struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Icon     string    `json:"icon"`
	Theme    string    `json:"theme"`
	Products []Product `json:"products"`
}

// FeedWarning signals partial degradation (e.g. campaigns unavailable)
// without failing the composition.
type FeedWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ComposeFeedRequest struct {
	UserID      uint   `json:"user_id"`
	Page        int    `json:"page"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

type ComposeFeedResponse struct {
	Sections    []CarouselSection `json:"sections"`
	Page        int               `json:"page"`
	HasNextPage bool              `json:"has_next_page"`
	Warnings    []FeedWarning     `json:"warnings,omitempty"`
}
