package feed

import (
	"context"
	"sync"

	"andaMarket/domain"
)

// ComposeFunc produces the sections for one page. The paginator treats it as
// opaque; the feed service binds it to Composer.ComposePage.
type ComposeFunc func(ctx context.Context, page int) ([]domain.CarouselSection, error)

// Paginator is the per-session state machine driving infinite scroll:
// idle -> loading -> has-more | exhausted. Triggers while loading or after
// exhaustion are silently ignored. A compose error leaves the already-loaded
// sections intact and the paginator retryable on the same page.
type Paginator struct {
	mu       sync.Mutex
	cfg      PaginationConfig
	poolSize int
	page     int
	hasNext  bool
	loading  bool
	sections []domain.CarouselSection
	compose  ComposeFunc
}

func NewPaginator(cfg PaginationConfig, poolSize int, compose ComposeFunc) *Paginator {
	if cfg.ProductsPerCarousel <= 0 {
		cfg.ProductsPerCarousel = defaultProductsPerCarousel
	}
	if cfg.CarouselsPerLoad <= 0 {
		cfg.CarouselsPerLoad = defaultCarouselsPerLoad
	}
	return &Paginator{
		cfg:      cfg,
		poolSize: poolSize,
		hasNext:  poolSize > 0,
		compose:  compose,
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// HasNextPage reports whether another page of sections remains. Once false
// it stays false until Reset replaces the candidate pool.
func (p *Paginator) HasNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasNext
}

func (p *Paginator) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Sections returns a snapshot of everything loaded so far.
func (p *Paginator) Sections() []domain.CarouselSection {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.CarouselSection, len(p.sections))
	copy(out, p.sections)
	return out
}

// LoadMore advances one page. It returns true when a page was appended,
// false for the no-op cases (already loading, exhausted). On error the page
// counter does not advance, so a retry re-runs the same page.
func (p *Paginator) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading || !p.hasNext {
		p.mu.Unlock()
		return false, nil
	}
	p.loading = true
	next := p.page + 1
	p.mu.Unlock()

	sections, err := p.compose(ctx, next)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return false, err
	}

	p.page = next
	p.sections = append(p.sections, sections...)
	p.hasNext = p.page*p.cfg.CarouselsPerLoad < ceilDiv(p.poolSize, p.cfg.ProductsPerCarousel)
	return true, nil
}

// Reset replaces the candidate pool (category or search change) and rewinds
// the session to page zero.
func (p *Paginator) Reset(poolSize int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.poolSize = poolSize
	p.page = 0
	p.hasNext = poolSize > 0
	p.loading = false
	p.sections = nil
}
