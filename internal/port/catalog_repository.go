package port

import (
	"context"

	"github.com/kevscue/storefront/internal/core/domain"
)

type CatalogRepository interface {
	// GetProduct retrieves a product by ID, nil when absent
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// ListProducts returns products in a category; "" or "all" returns everything
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)

	// DecrementStock reduces a product's stock and returns the new value.
	// It never takes stock below zero: an amount that would is refused.
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
}
