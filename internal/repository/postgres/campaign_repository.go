package postgres

import (
	"context"
	"fmt"
	"time"

	"andaMarket/domain"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// FindActive returns the currently running campaigns with their promoted
// product ids attached, highest priority first.
func (r *CampaignRepository) FindActive(ctx context.Context) ([]domain.Campaign, error) {
	now := time.Now()

	var campaigns []domain.Campaign
	err := r.db.WithContext(ctx).
		Where("starts_at <= ? AND ends_at > ?", now, now).
		Order("priority_score DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load active campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return campaigns, nil
	}

	ids := make([]uint64, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ID)
	}

	var links []domain.CampaignProduct
	if err := r.db.WithContext(ctx).Where("campaign_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load campaign products: %w", err)
	}

	byCampaign := make(map[uint64][]uint64, len(campaigns))
	for _, l := range links {
		byCampaign[l.CampaignID] = append(byCampaign[l.CampaignID], l.ProductID)
	}
	for i := range campaigns {
		campaigns[i].ProductIDs = byCampaign[campaigns[i].ID]
	}

	return campaigns, nil
}
