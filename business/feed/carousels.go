package feed

import (
	"math"
	"sort"

	"andaMarket/domain"
)

// CarouselKind enumerates the six section flavors. Each kind carries its own
// candidate-selection strategy, so adding a kind means extending this enum
// and the table below rather than branching on strings.
type CarouselKind int

const (
	KindFeatured CarouselKind = iota
	KindTrending
	KindDiscounted
	KindNew
	KindBestseller
	KindCategorySpecial

	NumCarouselKinds = 6
)

func (k CarouselKind) String() string {
	switch k {
	case KindFeatured:
		return "featured"
	case KindTrending:
		return "trending"
	case KindDiscounted:
		return "discounted"
	case KindNew:
		return "new"
	case KindBestseller:
		return "bestseller"
	case KindCategorySpecial:
		return "category_special"
	default:
		return "unknown"
	}
}

type carouselSpec struct {
	kind       CarouselKind
	title      string
	subtitle   string
	icon       string
	theme      string
	candidates func(pool []domain.Product, sctx ScoringContext, w Weights) []domain.Product
}

var carouselSpecs = [NumCarouselKinds]carouselSpec{
	{
		kind:       KindFeatured,
		title:      "Featured For You",
		subtitle:   "Hand-picked by our ranking engine",
		icon:       "star",
		theme:      "primary",
		candidates: featuredCandidates,
	},
	{
		kind:       KindTrending,
		title:      "Trending Now",
		subtitle:   "What everyone is looking at",
		icon:       "flame",
		theme:      "hot",
		candidates: trendingCandidates,
	},
	{
		kind:       KindDiscounted,
		title:      "Big Discounts",
		subtitle:   "More than 20% off",
		icon:       "tag",
		theme:      "sale",
		candidates: discountedCandidates,
	},
	{
		kind:       KindNew,
		title:      "Fresh Arrivals",
		subtitle:   "Just listed",
		icon:       "sparkles",
		theme:      "fresh",
		candidates: newestCandidates,
	},
	{
		kind:       KindBestseller,
		title:      "Bestsellers",
		subtitle:   "Proven favorites",
		icon:       "trophy",
		theme:      "gold",
		candidates: bestsellerCandidates,
	},
	{
		kind:       KindCategorySpecial,
		title:      "Category Picks",
		subtitle:   "Specials from this category",
		icon:       "grid",
		theme:      "neutral",
		candidates: categoryCandidates,
	},
}

func featuredCandidates(pool []domain.Product, sctx ScoringContext, w Weights) []domain.Product {
	scored := RecommendedProducts(pool, sctx, w)
	out := make([]domain.Product, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.Product)
	}
	return out
}

func trendingCandidates(pool []domain.Product, _ ScoringContext, _ Weights) []domain.Product {
	return TrendingProducts(pool, trendingLimit)
}

// discountedCandidates orders by discount depth first, but discounts within
// discountTolerance points of each other are considered equal and fall back
// to score ordering.
func discountedCandidates(pool []domain.Product, sctx ScoringContext, w Weights) []domain.Product {
	discounted := make([]domain.ScoredProduct, 0, len(pool))
	for _, p := range pool {
		if p.DiscountPercentage > minDiscountPercentage {
			discounted = append(discounted, domain.ScoredProduct{
				Product:   p,
				Breakdown: Score(p, sctx, w),
			})
		}
	}
	sort.SliceStable(discounted, func(i, j int) bool {
		di := discounted[i].Product.DiscountPercentage
		dj := discounted[j].Product.DiscountPercentage
		if math.Abs(di-dj) > discountTolerance {
			return di > dj
		}
		return discounted[i].Breakdown.Total > discounted[j].Breakdown.Total
	})
	out := make([]domain.Product, 0, len(discounted))
	for _, sp := range discounted {
		out = append(out, sp.Product)
	}
	return out
}

func newestCandidates(pool []domain.Product, _ ScoringContext, _ Weights) []domain.Product {
	out := make([]domain.Product, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func bestsellerCandidates(pool []domain.Product, _ ScoringContext, _ Weights) []domain.Product {
	sold := func(p domain.Product) int {
		if p.Analytics == nil {
			return 0
		}
		return p.Analytics.TotalSold
	}
	out := make([]domain.Product, 0, len(pool))
	for _, p := range pool {
		if sold(p) > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sold(out[i]) > sold(out[j])
	})
	return out
}

func categoryCandidates(pool []domain.Product, sctx ScoringContext, _ Weights) []domain.Product {
	if sctx.Category == "" {
		out := make([]domain.Product, len(pool))
		copy(out, pool)
		return out
	}
	out := make([]domain.Product, 0, len(pool))
	for _, p := range pool {
		if p.CategorySlug == sctx.Category {
			out = append(out, p)
		}
	}
	return out
}
