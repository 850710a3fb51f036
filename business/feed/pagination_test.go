package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"andaMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionsForPage(page int) []domain.CarouselSection {
	return []domain.CarouselSection{
		{ID: fmt.Sprintf("p%d-a", page)},
		{ID: fmt.Sprintf("p%d-b", page)},
		{ID: fmt.Sprintf("p%d-c", page)},
	}
}

func TestPaginatorTerminatesOnExactPool(t *testing.T) {
	// 24 products = ProductsPerCarousel * CarouselsPerLoad: one page serves
	// everything
	p := NewPaginator(DefaultPaginationConfig(), 24, func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		return sectionsForPage(page), nil
	})

	require.True(t, p.HasNextPage())

	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.HasNextPage())
	require.Len(t, p.Sections(), 3)

	// further triggers are silent no-ops
	loaded, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Len(t, p.Sections(), 3)
	assert.Equal(t, 1, p.Page())
}

func TestPaginatorAdvancesThroughPages(t *testing.T) {
	p := NewPaginator(DefaultPaginationConfig(), 100, func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		return sectionsForPage(page), nil
	})

	pages := 0
	for p.HasNextPage() {
		loaded, err := p.LoadMore(context.Background())
		require.NoError(t, err)
		require.True(t, loaded)
		pages++
		require.LessOrEqual(t, pages, 10, "paginator must terminate")
	}

	// ceil(100/8) = 13 section slots, 3 per page -> 5 pages
	assert.Equal(t, 5, pages)
	assert.Len(t, p.Sections(), 15)
}

func TestPaginatorErrorIsRetryable(t *testing.T) {
	boom := errors.New("transient")
	fail := true
	p := NewPaginator(DefaultPaginationConfig(), 100, func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		if fail {
			return nil, boom
		}
		return sectionsForPage(page), nil
	})

	loaded, err := p.LoadMore(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, loaded)

	// failure neither advanced the page nor exhausted the session
	assert.Equal(t, 0, p.Page())
	assert.True(t, p.HasNextPage())
	assert.Empty(t, p.Sections())

	// the retry re-runs the same page
	fail = false
	loaded, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 1, p.Page())
}

func TestPaginatorSerializesConcurrentTriggers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	p := NewPaginator(DefaultPaginationConfig(), 100, func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		close(started)
		<-release
		return sectionsForPage(page), nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loaded, err := p.LoadMore(context.Background())
		assert.NoError(t, err)
		assert.True(t, loaded)
	}()

	<-started

	// a trigger while loading is ignored, not queued
	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)

	close(release)
	wg.Wait()

	assert.Equal(t, 1, p.Page())
	assert.Len(t, p.Sections(), 3)
}

func TestPaginatorReset(t *testing.T) {
	p := NewPaginator(DefaultPaginationConfig(), 24, func(_ context.Context, page int) ([]domain.CarouselSection, error) {
		return sectionsForPage(page), nil
	})

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	require.False(t, p.HasNextPage())

	p.Reset(100)
	assert.Equal(t, 0, p.Page())
	assert.True(t, p.HasNextPage())
	assert.Empty(t, p.Sections())

	p.Reset(0)
	assert.False(t, p.HasNextPage())
}
