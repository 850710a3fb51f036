package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"andaMarket/business/feed"
	"andaMarket/domain"

	"github.com/redis/go-redis/v9"
)

// PreferenceRepository stores each user's interaction log as a Redis list,
// newest first. LPUSH+LTRIM inside one pipeline keeps the append and the
// FIFO eviction atomic per user.
type PreferenceRepository struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

func preferenceKey(userID uint) string {
	return fmt.Sprintf("pref:user:%d", userID)
}

func (r *PreferenceRepository) Append(ctx context.Context, userID uint, event domain.InteractionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal preference event: %w", err)
	}

	key := preferenceKey(userID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, feed.MaxPreferenceEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append preference event: %w", err)
	}

	return nil
}

func (r *PreferenceRepository) Read(ctx context.Context, userID uint) ([]domain.InteractionEvent, error) {
	rows, err := r.client.LRange(ctx, preferenceKey(userID), 0, feed.MaxPreferenceEvents-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read preference log: %w", err)
	}

	events := make([]domain.InteractionEvent, 0, len(rows))
	for _, row := range rows {
		var ev domain.InteractionEvent
		if err := json.Unmarshal([]byte(row), &ev); err != nil {
			// skip entries written by an older schema
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}
