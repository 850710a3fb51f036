package feed

import (
	"context"
	"fmt"
	"testing"

	"andaMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceLogFIFOCap(t *testing.T) {
	store := NewMemoryPreferenceStore()
	ctx := context.Background()

	for i := 0; i <= MaxPreferenceEvents; i++ {
		err := store.Append(ctx, 1, domain.InteractionEvent{
			CategorySlug: fmt.Sprintf("cat-%d", i),
			EventType:    "view",
		})
		require.NoError(t, err)
	}

	events, err := store.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, MaxPreferenceEvents)

	// newest first; the very first event has been evicted
	assert.Equal(t, fmt.Sprintf("cat-%d", MaxPreferenceEvents), events[0].CategorySlug)
	for _, ev := range events {
		assert.NotEqual(t, "cat-0", ev.CategorySlug)
	}
}

func TestCategoryAffinity(t *testing.T) {
	store := NewMemoryPreferenceStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, tracker.RecordInteraction(ctx, 1, domain.InteractionEvent{
			CategorySlug: "gadgets", EventType: "view",
		}))
	}
	require.NoError(t, tracker.RecordInteraction(ctx, 1, domain.InteractionEvent{
		CategorySlug: "books", EventType: "click",
	}))

	affinity, err := tracker.CategoryAffinity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, affinity["gadgets"])
	assert.Equal(t, 1, affinity["books"])
}

func TestRecordInteractionRequiresCategory(t *testing.T) {
	tracker := NewTracker(NewMemoryPreferenceStore())
	err := tracker.RecordInteraction(context.Background(), 1, domain.InteractionEvent{EventType: "view"})
	assert.Error(t, err)
}

func TestPersonalizedBoostIsMonotonic(t *testing.T) {
	scored := ScorePool([]domain.Product{
		testProduct(1, func(p *domain.Product) { p.CategorySlug = "gadgets" }),
		testProduct(2, func(p *domain.Product) { p.CategorySlug = "books" }),
		testProduct(3, func(p *domain.Product) { p.CategorySlug = "toys" }),
	}, testContext(), DefaultWeights())

	affinity := map[string]int{"gadgets": 5, "books": 1}

	ranked := PersonalizedProducts(scored, affinity)

	for _, sp := range ranked {
		assert.GreaterOrEqual(t, sp.PersonalizedScore, sp.Breakdown.Total)
	}
}

func TestPersonalizedRanking(t *testing.T) {
	// identical base scores: affinity alone decides the order
	scored := ScorePool([]domain.Product{
		testProduct(1, func(p *domain.Product) { p.CategorySlug = "books" }),
		testProduct(2, func(p *domain.Product) { p.CategorySlug = "gadgets" }),
	}, testContext(), DefaultWeights())

	ranked := PersonalizedProducts(scored, map[string]int{"gadgets": 4})

	require.Len(t, ranked, 2)
	assert.Equal(t, uint64(2), ranked[0].Product.ID)
	assert.InDelta(t, ranked[0].Breakdown.Total+0.4, ranked[0].PersonalizedScore, 1e-9)

	// base ranking untouched by an empty affinity map
	unranked := PersonalizedProducts(scored, nil)
	assert.Equal(t, unranked[0].Breakdown.Total, unranked[0].PersonalizedScore)
}
