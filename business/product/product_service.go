package product

import (
	"context"
	"errors"
	"fmt"

	"andaMarket/domain"
	"andaMarket/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// productService exposes the read-only catalog surface the feed composes
// for. Catalog writes belong to the seller dashboard, not this service.
type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find product by id", "id", id, "error", err)
		return nil, err
	}

	return &product, nil
}
