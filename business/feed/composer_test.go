package feed

import (
	"math/rand"
	"testing"

	"andaMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(n int) []domain.Product {
	pool := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		id := uint64(i)
		pool = append(pool, testProduct(id, func(p *domain.Product) {
			p.Analytics.Views = i * 7 % 300
			p.Analytics.TotalSold = i % 5
			p.DiscountPercentage = float64(i * 3 % 60)
			p.CreatedAt = testNow.AddDate(0, 0, -(i % 80))
		}))
	}
	return pool
}

func newTestComposer(seed int64) *Composer {
	return NewComposer(DefaultPaginationConfig(), DefaultWeights(), rand.New(rand.NewSource(seed)))
}

func TestComposePageSectionBounds(t *testing.T) {
	c := newTestComposer(1)
	pool := testPool(40)

	sections, err := c.ComposePage(pool, testContext(), 1)
	require.NoError(t, err)
	require.Len(t, sections, defaultCarouselsPerLoad)

	for _, s := range sections {
		assert.LessOrEqual(t, len(s.Products), defaultProductsPerCarousel)
		seen := make(map[uint64]struct{})
		for _, p := range s.Products {
			_, dup := seen[p.ID]
			assert.False(t, dup, "duplicate product %d in section %s", p.ID, s.Kind)
			seen[p.ID] = struct{}{}
		}
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Title)
	}
}

func TestComposePageRoundRobinKinds(t *testing.T) {
	c := newTestComposer(1)
	pool := testPool(60)

	var kinds []string
	for page := 1; page <= 2; page++ {
		sections, err := c.ComposePage(pool, testContext(), page)
		require.NoError(t, err)
		for _, s := range sections {
			kinds = append(kinds, s.Kind)
		}
	}

	// six sections across two pages visit each kind exactly once
	require.Len(t, kinds, 6)
	counts := make(map[string]int)
	for _, k := range kinds {
		counts[k]++
	}
	for _, kind := range []string{"featured", "trending", "discounted", "new", "bestseller", "category_special"} {
		assert.Equal(t, 1, counts[kind], "kind %s", kind)
	}
}

func TestComposePageGapFillReachesTargetSize(t *testing.T) {
	// plenty of products overall, but few qualify as discounted or
	// bestseller: gap-fill must top every section up to 8
	pool := make([]domain.Product, 0, 20)
	for i := 1; i <= 20; i++ {
		id := uint64(i)
		pool = append(pool, testProduct(id, func(p *domain.Product) {
			p.DiscountPercentage = 0
			p.Analytics.TotalSold = 0
		}))
	}

	c := newTestComposer(1)
	for page := 1; page <= 2; page++ {
		sections, err := c.ComposePage(pool, testContext(), page)
		require.NoError(t, err)
		for _, s := range sections {
			assert.Len(t, s.Products, defaultProductsPerCarousel, "section %s page %d", s.Kind, page)
		}
	}
}

func TestComposePageTinyUniverse(t *testing.T) {
	// fewer products than a single section: sections may legitimately be
	// short, but never contain duplicates
	pool := testPool(5)
	c := newTestComposer(1)

	sections, err := c.ComposePage(pool, testContext(), 1)
	require.NoError(t, err)
	for _, s := range sections {
		assert.LessOrEqual(t, len(s.Products), 5)
		seen := make(map[uint64]struct{})
		for _, p := range s.Products {
			_, dup := seen[p.ID]
			assert.False(t, dup)
			seen[p.ID] = struct{}{}
		}
	}
}

func TestComposePageDeterministicWithSeededSource(t *testing.T) {
	pool := testPool(12)

	a, err := newTestComposer(42).ComposePage(pool, testContext(), 1)
	require.NoError(t, err)
	b, err := newTestComposer(42).ComposePage(pool, testContext(), 1)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		require.Len(t, b[i].Products, len(a[i].Products))
		for j := range a[i].Products {
			assert.Equal(t, a[i].Products[j].ID, b[i].Products[j].ID)
		}
	}
}

func TestComposePageEmptyPool(t *testing.T) {
	_, err := newTestComposer(1).ComposePage(nil, testContext(), 1)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestDiscountedCandidatesOrdering(t *testing.T) {
	high := testProduct(1, func(p *domain.Product) {
		p.DiscountPercentage = 30
	})
	deeper := testProduct(2, func(p *domain.Product) {
		p.DiscountPercentage = 50
	})
	// within the 5-point tolerance of deeper, but a much better product
	closeButBetter := testProduct(3, func(p *domain.Product) {
		p.DiscountPercentage = 48
		p.Analytics.Views = 10
		p.Analytics.Purchases = 10
		p.AverageRating = 5
		p.ReviewCount = 50
	})
	ignored := testProduct(4, func(p *domain.Product) {
		p.DiscountPercentage = 10
	})

	out := discountedCandidates(
		[]domain.Product{high, deeper, closeButBetter, ignored},
		testContext(),
		DefaultWeights(),
	)

	require.Len(t, out, 3)
	// 48% beats 50% on score inside the tolerance window; 30% trails both
	assert.Equal(t, uint64(3), out[0].ID)
	assert.Equal(t, uint64(2), out[1].ID)
	assert.Equal(t, uint64(1), out[2].ID)
}

func TestCategoryCandidates(t *testing.T) {
	pool := []domain.Product{
		testProduct(1, func(p *domain.Product) { p.CategorySlug = "books" }),
		testProduct(2, func(p *domain.Product) { p.CategorySlug = "gadgets" }),
	}

	sctx := testContext()
	sctx.Category = "books"
	out := categoryCandidates(pool, sctx, DefaultWeights())
	require.Len(t, out, 1)
	assert.Equal(t, uint64(1), out[0].ID)

	// no category context: the whole pool qualifies
	assert.Len(t, categoryCandidates(pool, testContext(), DefaultWeights()), 2)
}
