package feed

import (
	"math/rand"
	"sync"
	"time"

	"andaMarket/domain"

	"github.com/google/uuid"
)

// Composer slices ranked candidate lists into fixed-size carousel sections.
// The fallback shuffle uses an injectable random source so fills are
// reproducible under test; production seeds from the clock.
type Composer struct {
	cfg     PaginationConfig
	weights Weights

	mu  sync.Mutex
	rng *rand.Rand
}

func NewComposer(cfg PaginationConfig, weights Weights, rng *rand.Rand) *Composer {
	if cfg.ProductsPerCarousel <= 0 {
		cfg.ProductsPerCarousel = defaultProductsPerCarousel
	}
	if cfg.CarouselsPerLoad <= 0 {
		cfg.CarouselsPerLoad = defaultCarouselsPerLoad
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{cfg: cfg, weights: weights, rng: rng}
}

func (c *Composer) Config() PaginationConfig {
	return c.cfg
}

// shuffledFallback draws a shuffled copy of the pool, once per compose pass.
func (c *Composer) shuffledFallback(pool []domain.Product) []domain.Product {
	fallback := make([]domain.Product, len(pool))
	copy(fallback, pool)
	c.mu.Lock()
	c.rng.Shuffle(len(fallback), func(i, j int) {
		fallback[i], fallback[j] = fallback[j], fallback[i]
	})
	c.mu.Unlock()
	return fallback
}

// ComposePage builds the CarouselsPerLoad sections for page p (1-based).
// Section kinds round-robin deterministically across the global section
// sequence, independent of candidate-pool size.
func (c *Composer) ComposePage(pool []domain.Product, sctx ScoringContext, page int) ([]domain.CarouselSection, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if page < 1 {
		page = 1
	}

	ppc := c.cfg.ProductsPerCarousel
	startIndex := (page - 1) * ppc * c.cfg.CarouselsPerLoad
	fallback := c.shuffledFallback(pool)

	sections := make([]domain.CarouselSection, 0, c.cfg.CarouselsPerLoad)
	for i := 0; i < c.cfg.CarouselsPerLoad; i++ {
		spec := carouselSpecs[(startIndex/ppc+i)%NumCarouselKinds]
		candidates := spec.candidates(pool, sctx, c.weights)

		items := takeWindow(candidates, startIndex+i*ppc, ppc)
		items = gapFill(items, fallback, ppc)

		section := domain.CarouselSection{
			ID:       uuid.NewString(),
			Kind:     spec.kind.String(),
			Title:    spec.title,
			Subtitle: spec.subtitle,
			Icon:     spec.icon,
			Theme:    spec.theme,
			Products: items,
		}
		if spec.kind == KindCategorySpecial && sctx.Category != "" {
			section.Subtitle = "Specials from " + sctx.Category
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// takeWindow collects up to size unique products starting at offset
// (mod len), wrapping around the candidate list.
func takeWindow(candidates []domain.Product, offset, size int) []domain.Product {
	items := make([]domain.Product, 0, size)
	if len(candidates) == 0 {
		return items
	}
	start := offset % len(candidates)
	seen := make(map[uint64]struct{}, size)
	for j := 0; j < len(candidates) && len(items) < size; j++ {
		p := candidates[(start+j)%len(candidates)]
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return items
}

// gapFill tops up an under-sized section from the shuffled fallback pool,
// skipping ids already present. A section stays short only when the whole
// candidate universe has fewer than size products.
func gapFill(items []domain.Product, fallback []domain.Product, size int) []domain.Product {
	if len(items) >= size {
		return items
	}
	seen := make(map[uint64]struct{}, len(items))
	for _, p := range items {
		seen[p.ID] = struct{}{}
	}
	for _, p := range fallback {
		if len(items) >= size {
			break
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return items
}
