package postgres

import (
	"context"
	"fmt"

	"andaMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindPool loads the candidate pool for the current browsing context, with
// the analytics snapshot preloaded so scoring never touches the database.
func (r *ProductRepository) FindPool(ctx context.Context, category, subcategory string) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Preload("Analytics")
	if category != "" {
		query = query.Where("category_slug = ?", category)
	}
	if subcategory != "" {
		query = query.Where("subcategory_slug = ?", subcategory)
	}

	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load product pool: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Preload("Analytics").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).Preload("Analytics").First(&product, id).Error; err != nil {
		return domain.Product{}, fmt.Errorf("failed to find product %d: %w", id, err)
	}

	return product, nil
}
