package port

import (
	"context"

	"github.com/kevscue/storefront/internal/core/domain"
)

type CustomerRepository interface {
	// GetCustomer retrieves a customer profile by ID, nil when unknown
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
}
