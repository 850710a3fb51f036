package feed

import (
	"context"
	"errors"
	"testing"

	"andaMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	pool []domain.Product
	err  error
}

func (r *fakeProductRepo) FindPool(_ context.Context, category, _ string) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	if category == "" {
		return r.pool, nil
	}
	out := make([]domain.Product, 0, len(r.pool))
	for _, p := range r.pool {
		if p.CategorySlug == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
	err       error
}

func (r *fakeCampaignRepo) FindActive(_ context.Context) ([]domain.Campaign, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.campaigns, nil
}

func newTestService(products *fakeProductRepo, campaigns *fakeCampaignRepo) *FeedService {
	return NewFeedService(products, campaigns, NewMemoryPreferenceStore(), DefaultServiceConfig(), nil)
}

func TestComposeFeedHappyPath(t *testing.T) {
	svc := newTestService(&fakeProductRepo{pool: testPool(40)}, &fakeCampaignRepo{})

	resp, err := svc.ComposeFeed(context.Background(), domain.ComposeFeedRequest{Page: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Sections, defaultCarouselsPerLoad)
	assert.True(t, resp.HasNextPage)
	assert.Empty(t, resp.Warnings)
}

func TestComposeFeedCampaignDegradation(t *testing.T) {
	svc := newTestService(
		&fakeProductRepo{pool: testPool(40)},
		&fakeCampaignRepo{err: errors.New("campaign store down")},
	)

	resp, err := svc.ComposeFeed(context.Background(), domain.ComposeFeedRequest{Page: 1})
	require.NoError(t, err)

	// composition survives, with a warning instead of campaign boosts
	assert.Len(t, resp.Sections, defaultCarouselsPerLoad)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, WarnCampaignsUnavailable, resp.Warnings[0].Code)
}

func TestComposeFeedCampaignBoostApplied(t *testing.T) {
	pool := testPool(10)
	svc := newTestService(
		&fakeProductRepo{pool: pool},
		&fakeCampaignRepo{campaigns: []domain.Campaign{
			{ID: 1, PriorityScore: 10, ProductIDs: []uint64{3}},
		}},
	)

	scored, err := svc.DebugScores(context.Background(), domain.ComposeFeedRequest{}, 20)
	require.NoError(t, err)

	var found bool
	for _, sp := range scored {
		if sp.Product.ID == 3 {
			found = true
			assert.Equal(t, 1.0, sp.Breakdown.CampaignBoost)
		}
	}
	assert.True(t, found)
}

func TestComposeFeedEmptyPool(t *testing.T) {
	svc := newTestService(&fakeProductRepo{}, &fakeCampaignRepo{})

	_, err := svc.ComposeFeed(context.Background(), domain.ComposeFeedRequest{Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPool)

	var cerr *CompositionError
	assert.ErrorAs(t, err, &cerr)
}

func TestComposeFeedPoolFetchFailure(t *testing.T) {
	svc := newTestService(&fakeProductRepo{err: errors.New("db gone")}, &fakeCampaignRepo{})

	_, err := svc.ComposeFeed(context.Background(), domain.ComposeFeedRequest{Page: 1})
	var cerr *CompositionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "pool fetch", cerr.Stage)
}

func TestComposeFeedPaginationFormula(t *testing.T) {
	// exactly one page worth of products
	svc := newTestService(&fakeProductRepo{pool: testPool(24)}, &fakeCampaignRepo{})

	resp, err := svc.ComposeFeed(context.Background(), domain.ComposeFeedRequest{Page: 1})
	require.NoError(t, err)
	assert.False(t, resp.HasNextPage)
}

func TestBrowsingSessionEndToEnd(t *testing.T) {
	svc := newTestService(&fakeProductRepo{pool: testPool(24)}, &fakeCampaignRepo{})

	p, err := svc.NewBrowsingSession(context.Background(), domain.ComposeFeedRequest{})
	require.NoError(t, err)

	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.False(t, p.HasNextPage())
	assert.Len(t, p.Sections(), defaultCarouselsPerLoad)
}

func TestPersonalizedFeedUsesAffinity(t *testing.T) {
	pool := []domain.Product{
		testProduct(1, func(p *domain.Product) { p.CategorySlug = "books" }),
		testProduct(2, func(p *domain.Product) { p.CategorySlug = "gadgets" }),
	}
	svc := newTestService(&fakeProductRepo{pool: pool}, &fakeCampaignRepo{})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.RecordInteraction(ctx, 9, domain.InteractionEvent{
			CategorySlug: "gadgets", EventType: "view",
		}))
	}

	ranked, warnings, err := svc.PersonalizedFeed(ctx, 9, domain.ComposeFeedRequest{}, 10)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint64(2), ranked[0].Product.ID)
}

type failingPrefStore struct{}

func (failingPrefStore) Append(context.Context, uint, domain.InteractionEvent) error {
	return errors.New("store down")
}

func (failingPrefStore) Read(context.Context, uint) ([]domain.InteractionEvent, error) {
	return nil, errors.New("store down")
}

func TestPersonalizedFeedDegradesWithoutPreferences(t *testing.T) {
	svc := NewFeedService(
		&fakeProductRepo{pool: testPool(10)},
		&fakeCampaignRepo{},
		failingPrefStore{},
		DefaultServiceConfig(),
		nil,
	)

	ranked, warnings, err := svc.PersonalizedFeed(context.Background(), 9, domain.ComposeFeedRequest{}, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, ranked)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnPreferencesUnavailable, warnings[0].Code)
}
