package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"andaMarket/domain"
)

// MaxPreferenceEvents bounds the per-user interaction log. Oldest entries
// are evicted first.
const MaxPreferenceEvents = 100

// UserPreferenceStore is the external key-value collaborator holding the
// bounded FIFO interaction log per user. Append must push the newest event
// to the front and truncate at MaxPreferenceEvents, atomically for a given
// user so concurrent events do not lose updates.
type UserPreferenceStore interface {
	Append(ctx context.Context, userID uint, event domain.InteractionEvent) error
	Read(ctx context.Context, userID uint) ([]domain.InteractionEvent, error)
}

// Tracker summarizes the interaction log into per-category affinity counts.
// It never mutates algorithm scores; personalization is a derived,
// display-time ranking only.
type Tracker struct {
	store UserPreferenceStore
}

func NewTracker(store UserPreferenceStore) *Tracker {
	return &Tracker{store: store}
}

func (t *Tracker) RecordInteraction(ctx context.Context, userID uint, event domain.InteractionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if event.CategorySlug == "" {
		return fmt.Errorf("category_slug is required")
	}
	if err := t.store.Append(ctx, userID, event); err != nil {
		return fmt.Errorf("append preference event: %w", err)
	}
	PreferenceEventsTotal.WithLabelValues(event.EventType).Inc()
	return nil
}

// CategoryAffinity tallies how often each category appears in the user's log.
func (t *Tracker) CategoryAffinity(ctx context.Context, userID uint) (map[string]int, error) {
	events, err := t.store.Read(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read preference log: %w", err)
	}
	affinity := make(map[string]int, len(events))
	for _, ev := range events {
		affinity[ev.CategorySlug]++
	}
	return affinity, nil
}

// PersonalizedProducts re-ranks already-scored products by adding
// affinityWeight per matching category interaction on top of the algorithm
// score. The boost is non-negative, so a personalized score never drops
// below the base score.
func PersonalizedProducts(scored []domain.ScoredProduct, affinity map[string]int) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, len(scored))
	copy(out, scored)
	for i := range out {
		boost := float64(affinity[out[i].Product.CategorySlug]) * affinityWeight
		out[i].PersonalizedScore = out[i].Breakdown.Total + boost
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PersonalizedScore > out[j].PersonalizedScore
	})
	return out
}

// MemoryPreferenceStore is an in-process UserPreferenceStore, used as the
// default when no Redis is configured and throughout the tests.
type MemoryPreferenceStore struct {
	mu   sync.Mutex
	logs map[uint][]domain.InteractionEvent
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{
		logs: make(map[uint][]domain.InteractionEvent),
	}
}

func (s *MemoryPreferenceStore) Append(ctx context.Context, userID uint, event domain.InteractionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append([]domain.InteractionEvent{event}, s.logs[userID]...)
	if len(log) > MaxPreferenceEvents {
		log = log[:MaxPreferenceEvents]
	}
	s.logs[userID] = log
	return nil
}

func (s *MemoryPreferenceStore) Read(ctx context.Context, userID uint) ([]domain.InteractionEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[userID]
	out := make([]domain.InteractionEvent, len(log))
	copy(out, log)
	return out, nil
}
